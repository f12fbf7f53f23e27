package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ValentinKolb/dColl/lib/collection"
	"github.com/ValentinKolb/dColl/lib/common"
	"github.com/ValentinKolb/dColl/lib/containers"
	"github.com/ValentinKolb/dColl/lib/serializer"
	"github.com/ValentinKolb/dColl/lib/store"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

var Logger = logger.GetLogger("cmd")

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// SetupDocumentFlags adds the flags shared by all document commands to a command
func SetupDocumentFlags(cmd *cobra.Command) {
	key := "format"
	cmd.PersistentFlags().String(key, "json", WrapString("Format of the documents (json, gob, binary)"))

	key = "kind"
	cmd.PersistentFlags().String(key, "array", WrapString("Kind of the collection the document is loaded into (array, map, list, set)"))

	key = "input"
	cmd.PersistentFlags().StringP(key, "i", "-", WrapString("File to read the document from, - for stdin"))

	key = "output"
	cmd.PersistentFlags().StringP(key, "o", "-", WrapString("File to write the document to, - for stdout"))

	key = "read-only"
	cmd.PersistentFlags().Bool(key, false, WrapString("Lock the collection after loading, every mutation fails"))

	key = "seed"
	cmd.PersistentFlags().Uint64(key, 0, WrapString("Seed for weighted random selection (0 for a random seed)"))

	key = "metrics"
	cmd.PersistentFlags().Bool(key, false, WrapString("Write prometheus metrics to stderr after the command"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Log level (debug, info, warn, error)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dcoll")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetConfig reads the configuration from viper
func GetConfig() *common.Config {
	return &common.Config{
		Kind:     viper.GetString("kind"),
		Format:   viper.GetString("format"),
		Input:    viper.GetString("input"),
		Output:   viper.GetString("output"),
		ReadOnly: viper.GetBool("read-only"),
		Seed:     viper.GetUint64("seed"),
		Metrics:  viper.GetBool("metrics"),
		LogLevel: viper.GetString("log-level"),
	}
}

// GetSerializer creates a serializer based on configuration
func GetSerializer() (serializer.ISerializer, error) {
	return serializer.New(viper.GetString("format"))
}

// GetSerializerFor picks the serializer by file extension (.json, .gob, .bin)
// and falls back to the configured format
func GetSerializerFor(path string) (serializer.ISerializer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return serializer.NewJSONSerializer(), nil
	case ".gob":
		return serializer.NewGOBSerializer(), nil
	case ".bin":
		return serializer.NewBinarySerializer(), nil
	default:
		return GetSerializer()
	}
}

// GetKind returns the configured collection kind
func GetKind() (collection.Kind, error) {
	return collection.ParseKind(viper.GetString("kind"))
}

// --------------------------------------------------------------------------
// Documents
// --------------------------------------------------------------------------

// ReadDocument reads path, or the input of cmd for "-" and ""
func ReadDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// WriteDocument writes data to path, or to the output of cmd for "-" and ""
func WriteDocument(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout())
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadCollection reads a document from path and loads it into a container of the
// configured kind. An empty document yields an empty collection.
func LoadCollection(cmd *cobra.Command, path string) (collection.ICollection, error) {
	kind, err := GetKind()
	if err != nil {
		return nil, err
	}
	policy, err := kind.Policy()
	if err != nil {
		return nil, err
	}
	s, err := GetSerializerFor(path)
	if err != nil {
		return nil, err
	}
	if !policy.AllowInt {
		// keeps {"1": ...} loadable into a map
		s = serializer.WithStringKeys(s)
	}

	data, err := ReadDocument(cmd, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var snap store.Snapshot
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := s.Deserialize(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
	}

	var opts []collection.Option
	if viper.GetBool("read-only") {
		opts = append(opts, collection.WithReadOnly(true))
	}

	c, err := containers.From(kind, snap, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", kind, err)
	}
	Logger.Debugf("loaded %s with %d entries", kind, c.Len())
	return c, nil
}

// SaveCollection writes the collection to the configured output
func SaveCollection(cmd *cobra.Command, c collection.ICollection) error {
	path := viper.GetString("output")
	s, err := GetSerializerFor(path)
	if err != nil {
		return err
	}
	data, err := s.Serialize(c.ToSnapshot())
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return WriteDocument(cmd, path, data)
}

// --------------------------------------------------------------------------
// Arguments
// --------------------------------------------------------------------------

// ParseValue parses a command line value as json literal (42, 1.5, true, null,
// [1,2], {"a":1}, "quoted"). Everything that is not valid json is used as plain string.
func ParseValue(arg string) any {
	var snap store.Snapshot
	if err := serializer.NewJSONSerializer().Deserialize([]byte("["+arg+"]"), &snap); err != nil || len(snap) != 1 {
		return arg
	}
	return snap[0].Value
}

// ParseKey parses a command line key. Kinds without integer keys take the argument
// as string key, all others use store.ParseKey ("1" is the integer key 1).
func ParseKey(arg string) store.Key {
	if kind, err := GetKind(); err == nil {
		if policy, err := kind.Policy(); err == nil && !policy.AllowInt {
			return store.StrKey(arg)
		}
	}
	return store.ParseKey(arg)
}

// FormatValue renders a value as json, falling back to fmt for values json can not encode
func FormatValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// Setup binds the flags of cmd to viper and initializes the loggers.
// Every command group calls it before running a command.
func Setup(cmd *cobra.Command) error {
	if err := BindCommandFlags(cmd); err != nil {
		return err
	}
	config := GetConfig()
	if err := common.InitLoggers(*config); err != nil {
		return err
	}
	Logger.Debugf("configuration: %s", config.String())
	return nil
}
