package exchange

import (
	"github.com/kage-cloud/routemap/pkg/except"
	"github.com/kage-cloud/routemap/pkg/parser"
)

type VisualizeRequest struct {
	Configs []string      `json:"configs"`
	Format  parser.Format `json:"format"`

	// Config is the single document form older clients send.
	Config string `json:"config"`
}

// Documents returns every document of the request, Configs first.
func (v *VisualizeRequest) Documents() []string {
	docs := make([]string, 0, len(v.Configs)+1)
	docs = append(docs, v.Configs...)
	if v.Config != "" {
		docs = append(docs, v.Config)
	}
	return docs
}

func (v *VisualizeRequest) Validate() error {
	if v.Format == "" {
		v.Format = parser.FormatAuto
	}
	if !v.Format.IsValid() {
		return except.NewError("Format %q is not valid. Use one of auto, json or yaml.", except.ErrInvalid, v.Format)
	}
	return nil
}

type HealthResponse struct {
	Status string `json:"status"`
}
