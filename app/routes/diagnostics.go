package routes

import (
	"net/http"

	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/app/config"
)

type InfoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Resources []string `json:"resources"`
}

// Diagnostics serves the static /test and /info endpoints.
type Diagnostics struct {
	app config.AppConfig
}

func NewDiagnostics(app config.AppConfig) *Diagnostics {
	return &Diagnostics{app: app}
}

func (d *Diagnostics) HandleTest(w http.ResponseWriter, r *http.Request) {
	api.WriteMessage(w, http.StatusOK, d.app.Name+" is up and running")
}

func (d *Diagnostics) HandleInfo(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, InfoResponse{
		Name:      d.app.Name,
		Version:   d.app.Version,
		Resources: Resources,
	})
}
