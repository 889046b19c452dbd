package vars

import (
	"os"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/arthur-debert/fastidious/pkg/types"
	"gopkg.in/yaml.v3"
)

// Save sets key to value in the YAML store at path, creating the file
// when it does not exist. Other keys are kept.
func Save(fs types.FS, path, key, value string) error {
	logger := logging.GetLogger("vars")

	if key == "" {
		return errors.New(errors.ErrInvalidInput, "key must not be empty")
	}

	store := types.Vars{}
	if _, err := fs.Stat(path); err == nil {
		data, err := fs.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).WithDetail("path", path)
		}
		existing, err := ParseYAML(data)
		if err != nil {
			return err
		}
		store = existing
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", path).WithDetail("path", path)
	}

	store[key] = value

	data, err := yaml.Marshal(map[string]string(store))
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode store")
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}

	logger.Info().Str("path", path).Str("key", key).Msg("saved value")
	return nil
}
