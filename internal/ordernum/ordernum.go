// Package ordernum génère les numéros de commande lisibles, au format
// AA-XXXXXXXX (8 hexadécimaux majuscules). L'unicité est garantie par la
// base (INSERT ... IF NOT EXISTS sur order_number), pas par l'aléa seul.
package ordernum

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const Prefix = "AA"

// Generator produit des numéros de commande depuis une source d'entropie
// injectée, ce qui rend la génération testable de façon déterministe.
type Generator struct {
	rand io.Reader
}

func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Next retourne un numéro de type AA-3F2A9C10.
func (g *Generator) Next() (string, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("lecture entropie: %w", err)
	}
	return Prefix + "-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
