package ostore

import (
	"testing"

	storetesting "github.com/ValentinKolb/dColl/lib/store/testing"
)

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "OrderedStore", Factory)
}
