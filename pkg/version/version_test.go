package version_test

import (
	"encoding/json"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-stylist/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func Test_Version_001(t *testing.T) {
	assert := assert.New(t)
	version.GitTag = "v1.2.3"
	defer func() { version.GitTag = "" }()
	assert.Equal("v1.2.3", version.Version())

	var info version.Info
	assert.NoError(json.Unmarshal(version.JSON("stylist"), &info))
	assert.Equal("stylist", info.Name)
	assert.Equal("v1.2.3", info.Version)
	assert.Equal("v1.2.3", info.Tag)
	assert.NotEmpty(info.Compiler)
}

func Test_Version_002(t *testing.T) {
	assert := assert.New(t)
	version.GitBranch = "main"
	defer func() { version.GitBranch = "" }()
	assert.Equal("main", version.Version())
}
