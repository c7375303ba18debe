package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
// Es la red de seguridad para la ventana de carrera entre el pre-chequeo de
// unicidad en el use case y el INSERT/UPDATE.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullIfEmpty convierte "" a NULL para columnas de texto opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// likeEscaper neutraliza los comodines de LIKE/ILIKE en términos de búsqueda
// provistos por el usuario. El backslash es el carácter de escape por defecto
// de LIKE en PostgreSQL.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike devuelve el término listo para concatenarse dentro de un patrón
// ILIKE: "50%" busca la subcadena literal "50%", no un prefijo.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// deref devuelve "" para punteros NULL escaneados desde columnas opcionales.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
