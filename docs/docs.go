// Package docs embebe la definición OpenAPI que sirve el UI de swagger.
// Al ir embebida en el binario, el arranque no depende de que el archivo
// exista en el directorio de trabajo.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte
