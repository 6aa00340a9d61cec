package config

import (
	"bytes"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/domain/model"
)

// Policy holds the location of the policy file
type Policy struct {
	Path string
}

// Flags returns CLI flags for policy configuration
func (c *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "TOML file overriding product, repository and tracker names",
			Destination: &c.Path,
			Sources:     cli.EnvVars("PKGREPORT_POLICY"),
		},
	}
}

// Load returns model.DefaultPolicy() with the fields set in the policy file
// applied on top
func (c *Policy) Load() (model.Policy, error) {
	policy := model.DefaultPolicy()
	if c.Path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return model.Policy{}, goerr.Wrap(err, "failed to read policy file", goerr.V("path", c.Path))
	}

	decoder := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields()
	if err := decoder.Decode(&policy); err != nil {
		return model.Policy{}, goerr.Wrap(err, "failed to parse policy file", goerr.V("path", c.Path))
	}

	if err := policy.Validate(); err != nil {
		return model.Policy{}, goerr.Wrap(err, "invalid policy file", goerr.V("path", c.Path))
	}
	return policy, nil
}
