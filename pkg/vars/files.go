package vars

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"
)

var propertyLine = regexp.MustCompile(`^([[:alnum:]._]*)=(.*)`)

// LoadFile reads a variable file, picking the format from its extension
func LoadFile(fs types.FS, path string) (types.Vars, error) {
	logger := logging.GetLogger("vars")

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read variables from %s", path).
			WithDetail("path", path)
	}

	var vars types.Vars
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		vars, err = ParseYAML(data)
	case ".xml":
		vars, err = ParseXMLProperties(data)
	default:
		vars = ParseProperties(data)
	}
	if err != nil {
		if coded, ok := err.(*errors.Error); ok {
			return nil, coded.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().Str("path", path).Int("count", len(vars)).Msg("loaded variables")
	return vars, nil
}

// ParseProperties reads key=value lines. Lines that do not start with a
// key made of letters, digits, dots and underscores are ignored; later
// keys win.
func ParseProperties(data []byte) types.Vars {
	vars := types.Vars{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if m := propertyLine.FindStringSubmatch(scanner.Text()); m != nil {
			vars[m[1]] = m[2]
		}
	}
	return vars
}

// ParseXMLProperties reads the XML properties format
func ParseXMLProperties(data []byte) (types.Vars, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid XML properties")
	}

	root := doc.SelectElement("properties")
	if root == nil {
		return nil, errors.New(errors.ErrConfigParse, "XML properties must have a <properties> root")
	}

	vars := types.Vars{}
	for _, entry := range root.SelectElements("entry") {
		key := entry.SelectAttrValue("key", "")
		if key == "" {
			return nil, errors.New(errors.ErrConfigParse, "XML properties entry without key")
		}
		vars[key] = entry.Text()
	}
	return vars, nil
}

// ParseYAML reads a flat YAML mapping. Scalar values of any type are kept
// in their textual form.
func ParseYAML(data []byte) (types.Vars, error) {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid YAML variables")
	}

	vars := types.Vars{}
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			vars[k] = ""
		case map[string]interface{}, []interface{}:
			return nil, errors.Newf(errors.ErrConfigParse, "variable %q is not a scalar", k).
				WithDetail("key", k)
		default:
			vars[k] = fmt.Sprint(val)
		}
	}
	return vars, nil
}
