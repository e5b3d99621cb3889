package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// pathParam binds the simple-style path parameter name into dest. On failure
// it writes a 422 and returns false.
func pathParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid path parameter "+name+": "+err.Error()))
		return false
	}
	return true
}

// queryParam binds the optional form-style query parameter name into dest,
// which must be a pointer to a pointer. On failure it writes a 422 and
// returns false.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid query parameter "+name+": "+err.Error()))
		return false
	}
	return true
}
