package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// Config controls where datasets come from and where the cache lives.
// BaseURL accepts http(s):// and s3://bucket/prefix locations.
type Config struct {
	BaseURL     string        `validate:"required,url"`
	CacheDir    string        `validate:"required"`
	Timeout     time.Duration `validate:"min=0"`
	Refresh     bool
	S3Region    string
	S3AccessKey string
	S3SecretKey string
}

// DefaultConfig points at the public resource with a user-level cache
// directory.
func DefaultConfig() Config {
	return Config{
		BaseURL:  "https://commons.omnipathdb.org",
		CacheDir: defaultCacheDir(),
		Timeout:  60 * time.Second,
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "signet", "datasets")
	}
	return filepath.Join(os.TempDir(), "signet-datasets")
}

// Validate checks the configuration and reports the first problem in a
// user-friendly format.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", e.Field())
		case "url":
			return fmt.Errorf("%s: must be a valid URL", e.Field())
		case "min":
			return fmt.Errorf("%s: must be at least %s", e.Field(), e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
		}
	}
	return err
}
