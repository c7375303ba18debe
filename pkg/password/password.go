// Package password concentra el hashing bcrypt y la política de
// complejidad de contraseñas que aplica todo el servicio.
package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Cost factor bcrypt. DefaultCost (10) cumple el mínimo exigido;
// subirlo solo requiere re-hashear en el próximo cambio de contraseña.
const cost = bcrypt.DefaultCost

// specialChars caracteres especiales aceptados por la política.
const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// ErrNoCoincide la contraseña no corresponde al hash. Se distingue de los
// errores internos de bcrypt (hash corrupto, cost inválido).
var ErrNoCoincide = errors.New("la contraseña no coincide")

// Hash genera el hash bcrypt (salt aleatorio incluido en la salida).
// Nunca registra ni devuelve el texto plano.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hashear contraseña: %w", err)
	}
	return string(h), nil
}

// Compare verifica el texto plano contra el hash en tiempo constante.
// Devuelve ErrNoCoincide en mismatch y el error original en fallos internos.
func Compare(plain, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrNoCoincide
		}
		return fmt.Errorf("verificar contraseña: %w", err)
	}
	return nil
}

// ValidatePolicy aplica la política de complejidad: mínimo 8 caracteres,
// al menos una mayúscula y al menos un carácter especial. Se usa en
// creación, cambio propio y asignación por admin.
func ValidatePolicy(plain string) error {
	if len(plain) < 8 {
		return errors.New("la contraseña debe tener al menos 8 caracteres")
	}
	var hasUpper bool
	for _, r := range plain {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return errors.New("la contraseña debe contener al menos una letra mayúscula")
	}
	if !strings.ContainsAny(plain, specialChars) {
		return errors.New("la contraseña debe contener al menos un carácter especial")
	}
	return nil
}
