// Package coll implements the document commands of dcoll. Each command loads the
// input document into a collection of the configured kind, runs one operation and
// either writes the resulting document or prints the result of a query.
//
// Example:
//
//	echo '["b","a"]' | dcoll coll sort --kind list
//	echo '{"x":1,"y":2}' | dcoll coll stats --kind map
//	dcoll coll set name '"dcoll"' --kind map -i doc.json -o doc.json
package coll
