package itemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `Eres un tutor de matemáticas que crea ejercicios de práctica para estudiantes de secundaria.

Reglas:
- Genera un solo ejercicio de opción múltiple para el concepto, grado y dificultad indicados.
- Escribe todo en español, con texto plano. Puedes usar símbolos matemáticos comunes (+, −, ×, ÷, ², √).
- El enunciado debe ser claro, autocontenido y apropiado para la edad del estudiante.
- Ofrece exactamente 4 opciones donde solo una es correcta. Los distractores deben reflejar errores típicos, no valores al azar.
- La respuesta correcta debe aparecer textualmente entre las opciones.
- La explicación debe mostrar la solución paso a paso, breve y clara.
- No repitas ninguna pregunta de la lista "ya preguntadas".
- Dificultad "easy": aplicación directa de la definición. "medium": dos pasos o contexto cotidiano. "hard": varios pasos o combinación de ideas.`

// buildUserMessage assembles the per-request prompt.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concepto: %s\n", input.Concept.Name)
	fmt.Fprintf(&b, "Área: %s\n", input.Concept.Subject)
	fmt.Fprintf(&b, "Grado del concepto: %s\n", input.Concept.Grade)
	if input.StudentGrade != "" {
		fmt.Fprintf(&b, "Grado del estudiante: %s\n", input.StudentGrade)
	}
	fmt.Fprintf(&b, "Dificultad: %s\n", input.Difficulty)

	b.WriteString("\nYa preguntadas en esta sesión:\n")
	b.WriteString(enumerate(input.PriorQuestions, cfg.MaxPriorQuestions))

	b.WriteString("\nErrores recientes del estudiante:\n")
	b.WriteString(enumerate(input.RecentErrors, cfg.MaxRecentErrors))

	return b.String()
}

// enumerate formats a numbered list keeping only the most recent max
// entries, "Ninguna" when empty.
func enumerate(entries []string, max int) string {
	if len(entries) == 0 {
		return "Ninguna"
	}
	if max > 0 && len(entries) > max {
		entries = entries[len(entries)-max:]
	}

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e)
	}
	return strings.TrimRight(b.String(), "\n")
}
