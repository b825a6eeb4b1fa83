package service

import (
	"fmt"
	"strings"

	"updatepos/internal/model"
)

// Descriptive-copy generation: builds the human-readable text frozen into
// each sale item at commit time. Pure functions — later catalog edits never
// change what was sold.

func descripcionComputadora(c *model.Computadora) string {
	partes := []string{c.Modelo}
	for _, s := range []string{c.Procesador, c.RAM, c.SSD, c.Pantalla} {
		if s != "" {
			partes = append(partes, s)
		}
	}
	return fmt.Sprintf("%s - Serial %s", strings.Join(partes, " "), c.Serial)
}

func descripcionCelular(c *model.Celular) string {
	partes := []string{c.Marca, c.Modelo}
	if c.Capacidad != "" {
		partes = append(partes, c.Capacidad)
	}
	if c.Color != "" {
		partes = append(partes, c.Color)
	}
	if c.BateriaPct != nil {
		partes = append(partes, fmt.Sprintf("bateria %d%%", *c.BateriaPct))
	}
	return fmt.Sprintf("%s - Serial %s", strings.Join(partes, " "), c.Serial)
}

func descripcionOtro(o *model.Otro) string {
	if o.Serial != nil && *o.Serial != "" {
		return fmt.Sprintf("%s (%s) - Serial %s", o.Nombre, o.Categoria, *o.Serial)
	}
	return fmt.Sprintf("%s (%s)", o.Nombre, o.Categoria)
}
