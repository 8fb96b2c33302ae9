// Package profiles reads profiles of the taskboard command line.
package profiles

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

var ErrProfileNotFound = errors.New("profile is not found")
var ErrProfileInvalid = errors.New("profile is invalid")

const (
	DefaultApiRoot  = "http://localhost:8080/api"
	DefaultApiDelay = 500 * time.Millisecond
)

// EnvApiRoot overrides apiRoot of profiles.
const EnvApiRoot = "TASKBOARD_API_ROOT"

type Cert struct {
	// base64 encoded CA certificate
	CA string `yaml:"ca,omitempty"`
}

// Profile tells where the command line talks to.
type Profile struct {
	// root URL of the taskboard API, like "http://localhost:8080/api".
	ApiRoot string `yaml:"apiRoot"`

	// When true, the command line uses the in-process mock API
	// instead of the server at ApiRoot.
	UseMockData bool `yaml:"useMockData"`

	// Latency of each call to the mock API, like "500ms".
	ApiDelay time.Duration `yaml:"apiDelay"`

	Cert Cert `yaml:"cert,omitempty"`
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	return &Profile{ApiRoot: DefaultApiRoot, ApiDelay: DefaultApiDelay}
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func verifyPEM(b64cert string) bool {
	bin, err := base64.StdEncoding.DecodeString(b64cert)
	if err != nil {
		return false
	}
	blk, _ := pem.Decode(bin)
	return blk != nil
}

// Verify returns nil if p is valid. Otherwise, it returns ErrProfileInvalid.
//
// ApiRoot is not checked for profiles using mock data.
func (p *Profile) Verify() error {
	if p.ApiDelay < 0 {
		return fmt.Errorf("%w: apiDelay is negative: %s", ErrProfileInvalid, p.ApiDelay)
	}
	if p.UseMockData {
		return nil
	}
	if !verifyUrl(p.ApiRoot) {
		return fmt.Errorf("%w: apiRoot is not URL: %q", ErrProfileInvalid, p.ApiRoot)
	}
	if p.Cert.CA != "" && !verifyPEM(p.Cert.CA) {
		return fmt.Errorf("%w: cert.ca is not PEM", ErrProfileInvalid)
	}
	return nil
}

// Unmarshal reads a profile in yaml. Fields not given are defaults.
func Unmarshal(buf []byte) (*Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(buf, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileInvalid, err)
	}
	if err := p.Verify(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads the profile at path, then applies environment variables.
//
// For empty path, it starts from Default.
func Load(path string) (*Profile, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Profile, error) {
	p := Default()
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w at %s", ErrProfileNotFound, path)
			}
			return nil, err
		}
		if p, err = Unmarshal(buf); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if root, ok := lookup(EnvApiRoot); ok && root != "" {
		p.ApiRoot = root
		if err := p.Verify(); err != nil {
			return nil, fmt.Errorf("$%s: %w", EnvApiRoot, err)
		}
	}
	return p, nil
}
