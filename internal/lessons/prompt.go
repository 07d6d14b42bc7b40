package lessons

import (
	"fmt"
	"strings"
)

const lessonSystemPrompt = `Eres un tutor de matemáticas paciente y motivador para estudiantes de secundaria. Un estudiante tiene dificultades con un concepto y necesita una lección corta y clara, en español.`

func buildLessonUserMessage(input LessonInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concepto: %s\n", input.Concept.Name)
	fmt.Fprintf(&b, "Área: %s\n", input.Concept.Subject)
	fmt.Fprintf(&b, "Grado: %s\n", input.Concept.Grade)
	if input.StudentGrade != "" {
		fmt.Fprintf(&b, "Grado del estudiante: %s\n", input.StudentGrade)
	}
	fmt.Fprintf(&b, "Precisión reciente del estudiante: %.0f%%\n", input.Accuracy*100)

	b.WriteString("\nErrores recientes:\n")
	if len(input.RecentErrors) == 0 {
		b.WriteString("Ninguno\n")
	} else {
		for _, e := range input.RecentErrors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	if len(input.WeakPrerequisites) > 0 {
		fmt.Fprintf(&b, "\nPrerrequisitos débiles: %s\n", strings.Join(input.WeakPrerequisites, ", "))
	}

	b.WriteString(`
Instrucciones:
Crea una micro-lección que:
1. Explique el concepto en 3-5 oraciones con lenguaje sencillo, atendiendo los errores mostrados arriba. Si hay prerrequisitos débiles, repásalos brevemente en lugar de darlos por sabidos.
2. Muestre un ejemplo resuelto completo con pasos numerados, parecido (pero no idéntico) a los problemas que el estudiante falló.
3. Proponga una pregunta de práctica MÁS FÁCIL que las que falló, resoluble con la explicación y el ejemplo anteriores.
4. La pregunta de práctica debe tener una sola respuesta correcta, con una explicación breve.
5. Usa texto plano en español; puedes usar símbolos matemáticos comunes.`)

	return b.String()
}
