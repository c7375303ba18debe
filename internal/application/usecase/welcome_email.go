package usecase

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/reconciliemos/cuentas-api/internal/domain/entity"
)

// WelcomeMailConfig datos de marca para el correo de bienvenida.
type WelcomeMailConfig struct {
	SiteName  string
	ClientURL string // base del frontend; el enlace de login es ClientURL + "/login"
	LogoURL   string
}

// welcomeTmpl cuerpo HTML del correo informativo que recibe una cuenta
// recién creada: rol asignado, credenciales y enlace de login.
var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 20px auto; border: 1px solid #ddd; border-radius: 8px; overflow: hidden;">
  <div style="background-color: #f4f4f4; padding: 20px; text-align: center;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.SiteName}} Logo" style="max-width: 200px; margin-bottom: 15px;">{{end}}
    <h1 style="color: #0056b3; margin:0;">¡Bienvenido a {{.SiteName}}!</h1>
  </div>
  <div style="padding: 25px;">
    <p>Hola {{.Nombre}},</p>
    <p>
      Un administrador ha creado y activado una cuenta para usted en la plataforma de {{.SiteName}}
      con el rol de <strong>{{.Role}}</strong>.
      {{if .NumeroSicac}}<br>Su Número SICAAC asignado es: <strong>{{.NumeroSicac}}</strong>.{{end}}
    </p>
    <p>Sus credenciales para acceder son:</p>
    <ul style="list-style: none; padding: 0;">
      <li style="margin-bottom: 8px;"><strong>Correo Electrónico:</strong> {{.Email}}</li>
      <li style="margin-bottom: 8px;"><strong>Contraseña Asignada:</strong> {{.Password}}</li>
    </ul>
    <p style="font-weight: bold; color: #d9534f;">
      Por su seguridad, le recomendamos encarecidamente cambiar esta contraseña después de su primer inicio de sesión.
    </p>
    <p style="text-align: center; margin: 25px 0;">
      <a href="{{.LoginURL}}" target="_blank" style="background-color: #007bff; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px; font-weight: bold;">Iniciar Sesión</a>
    </p>
    <p>Atentamente,<br>El equipo de {{.SiteName}}</p>
  </div>
  <div style="background-color: #f9f9f9; padding: 15px; text-align: center; font-size: 0.9em; color: #777;">
    &copy; {{.Year}} {{.SiteName}}. Todos los derechos reservados.
  </div>
</div>
`))

func (c WelcomeMailConfig) render(user *entity.User, plainPassword string) (string, error) {
	nombre := user.FirstName
	if nombre == "" {
		nombre = user.Email
	}
	data := struct {
		SiteName, LogoURL, Nombre, Role, NumeroSicac, Email, Password, LoginURL string
		Year                                                                    int
	}{
		SiteName:    c.SiteName,
		LogoURL:     c.LogoURL,
		Nombre:      nombre,
		Role:        user.Role,
		NumeroSicac: user.NumeroSicac,
		Email:       user.Email,
		Password:    plainPassword,
		LoginURL:    strings.TrimRight(c.ClientURL, "/") + "/login",
		Year:        time.Now().Year(),
	}
	var sb strings.Builder
	if err := welcomeTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("renderizar correo de bienvenida: %w", err)
	}
	return sb.String(), nil
}
