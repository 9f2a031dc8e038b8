package httpapi

import (
	_ "embed"
	"fmt"
	"net/http"
)

//go:embed openapi.yaml
var openAPISpec []byte

const (
	openAPIPath      = "/openapi.yaml"
	swaggerUIAssets  = "https://unpkg.com/swagger-ui-dist@5"
	swaggerPageTitle = "Antelope Reconciler API Docs"
)

var swaggerPage = []byte(fmt.Sprintf(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>%[1]s</title>
<link rel="stylesheet" href="%[2]s/swagger-ui.css" />
<style>body { margin: 0; } #swagger-ui { max-width: 1200px; margin: 0 auto; }</style>
</head>
<body>
<div id="swagger-ui"></div>
<script src="%[2]s/swagger-ui-bundle.js"></script>
<script>
window.ui = SwaggerUIBundle({ url: %[3]q, dom_id: "#swagger-ui", deepLinking: true, presets: [SwaggerUIBundle.presets.apis] });
</script>
</body>
</html>
`, swaggerPageTitle, swaggerUIAssets, openAPIPath))

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.OpenAPI")
	defer span.End()

	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(openAPISpec)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.SwaggerUI")
	defer span.End()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(swaggerPage)
}
