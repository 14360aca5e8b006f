package exchange

import (
	"testing"

	"github.com/kage-cloud/routemap/pkg/except"
	"github.com/kage-cloud/routemap/pkg/parser"
	"github.com/stretchr/testify/suite"
)

type VisualizeTestSuite struct {
	suite.Suite
}

func (v *VisualizeTestSuite) TestValidateDefaultsFormat() {
	// -- Given
	//
	given := &VisualizeRequest{Configs: []string{"{}"}}

	// -- When
	//
	err := given.Validate()

	// -- Then
	//
	v.NoError(err)
	v.Equal(parser.FormatAuto, given.Format)
}

func (v *VisualizeTestSuite) TestValidateRejectsUnknownFormat() {
	err := (&VisualizeRequest{Format: "toml"}).Validate()

	v.Error(err)
	v.Equal(except.ErrInvalid, except.Reason(err))
}

func (v *VisualizeTestSuite) TestDocuments() {
	given := &VisualizeRequest{Configs: []string{"a", "b"}, Config: "c"}

	v.Equal([]string{"a", "b", "c"}, given.Documents())
	v.Equal([]string{}, (&VisualizeRequest{}).Documents())
}

func TestVisualizeTestSuite(t *testing.T) {
	suite.Run(t, new(VisualizeTestSuite))
}
