package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors convertit les erreurs de binding Gin en messages par champ,
// clé = nom du champ JSON (snake_case), pour les réponses 400.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["detail"] = "Données invalides"
		return out
	}

	for _, fe := range verrs {
		out[jsonFieldName(fe)] = fieldMessage(fe)
	}
	return out
}

func jsonFieldName(fe validator.FieldError) string {
	// Le namespace ressemble à "createOrderRequest.Items[0].Quantity" ; on ne
	// garde que le champ terminal, en snake_case comme dans le JSON.
	ns := fe.Namespace()
	field := ns[strings.LastIndex(ns, ".")+1:]
	return toSnake(field)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est obligatoire"
	case "email":
		return "Adresse email invalide"
	case "gt":
		return fmt.Sprintf("Doit être supérieur à %s", fe.Param())
	case "min":
		return fmt.Sprintf("Au moins %s élément(s) requis", fe.Param())
	case "oneof":
		return fmt.Sprintf("Valeur invalide (attendu: %s)", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return "Les mots de passe ne correspondent pas"
	default:
		return "Valeur invalide"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			// pas de séparateur au début ni au milieu d'un sigle (ID, SKU)
			if i > 0 && !(runes[i-1] >= 'A' && runes[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
