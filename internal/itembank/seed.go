package itembank

import "math/rand"

// seedItems is the handwritten fallback bank. At least one item per
// curriculum concept so the engine can always serve something when
// generation is offline.
func seedItems() []Item {
	return []Item{
		{
			ID: "seed-1_ARIT_01-e1", ConceptID: "1_ARIT_01", Difficulty: Easy,
			Question:      "¿Cuál es el resultado de 345 + 278?",
			Options:       []string{"623", "613", "523", "633"},
			CorrectAnswer: "623",
			Explanation:   "Suma las unidades (5+8=13, lleva 1), decenas (4+7+1=12, lleva 1) y centenas (3+2+1=6): 623.",
		},
		{
			ID: "seed-1_ARIT_01-m1", ConceptID: "1_ARIT_01", Difficulty: Medium,
			Question:      "Un camión carga 12 cajas de 48 naranjas cada una. ¿Cuántas naranjas transporta en total?",
			Options:       []string{"576", "526", "486", "596"},
			CorrectAnswer: "576",
			Explanation:   "12 × 48 = 12 × 50 − 12 × 2 = 600 − 24 = 576 naranjas.",
		},
		{
			ID: "seed-1_ARIT_02-e1", ConceptID: "1_ARIT_02", Difficulty: Easy,
			Question:      "¿Cuál es el resultado de (−7) + 12?",
			Options:       []string{"5", "−5", "19", "−19"},
			CorrectAnswer: "5",
			Explanation:   "Con signos distintos se restan los valores absolutos: 12 − 7 = 5, con el signo del mayor.",
		},
		{
			ID: "seed-1_ARIT_02-m1", ConceptID: "1_ARIT_02", Difficulty: Medium,
			Question:      "La temperatura baja de 4 °C a −9 °C. ¿Cuántos grados descendió?",
			Options:       []string{"13", "5", "9", "−13"},
			CorrectAnswer: "13",
			Explanation:   "La variación es 4 − (−9) = 13 grados de descenso.",
		},
		{
			ID: "seed-1_ARIT_03-e1", ConceptID: "1_ARIT_03", Difficulty: Easy,
			Question:      "¿Qué fracción es equivalente a 2/4?",
			Options:       []string{"1/2", "2/3", "3/4", "1/4"},
			CorrectAnswer: "1/2",
			Explanation:   "Dividiendo numerador y denominador entre 2: 2/4 = 1/2.",
		},
		{
			ID: "seed-1_ARIT_03-m1", ConceptID: "1_ARIT_03", Difficulty: Medium,
			Question:      "¿Cuál es el resultado de 3/4 + 1/6?",
			Options:       []string{"11/12", "4/10", "5/6", "9/12"},
			CorrectAnswer: "11/12",
			Explanation:   "Con denominador común 12: 9/12 + 2/12 = 11/12.",
		},
		{
			ID: "seed-2_ARIT_01-e1", ConceptID: "2_ARIT_01", Difficulty: Easy,
			Question:      "¿Cuál es el resultado de 0.6 + 0.75?",
			Options:       []string{"1.35", "1.25", "0.81", "1.45"},
			CorrectAnswer: "1.35",
			Explanation:   "Alineando los decimales: 0.60 + 0.75 = 1.35.",
		},
		{
			ID: "seed-2_ARIT_01-m1", ConceptID: "2_ARIT_01", Difficulty: Medium,
			Question:      "¿Cuál es el resultado de 2.5 × 0.4?",
			Options:       []string{"1", "10", "0.1", "1.5"},
			CorrectAnswer: "1",
			Explanation:   "25 × 4 = 100 y se corren dos cifras decimales: 1.00.",
		},
		{
			ID: "seed-2_ARIT_02-m1", ConceptID: "2_ARIT_02", Difficulty: Medium,
			Question:      "Si 3 cuadernos cuestan 24 soles, ¿cuánto cuestan 7 cuadernos?",
			Options:       []string{"56 soles", "48 soles", "64 soles", "42 soles"},
			CorrectAnswer: "56 soles",
			Explanation:   "Cada cuaderno cuesta 24 ÷ 3 = 8 soles, así que 7 × 8 = 56 soles.",
		},
		{
			ID: "seed-3_ARIT_01-e1", ConceptID: "3_ARIT_01", Difficulty: Easy,
			Question:      "¿Cuánto es el 25% de 80?",
			Options:       []string{"20", "25", "16", "40"},
			CorrectAnswer: "20",
			Explanation:   "El 25% es la cuarta parte: 80 ÷ 4 = 20.",
		},
		{
			ID: "seed-3_ARIT_01-h1", ConceptID: "3_ARIT_01", Difficulty: Hard,
			Question:      "Un pantalón de 120 soles tiene 15% de descuento y luego se aplica 18% de impuesto. ¿Cuál es el precio final?",
			Options:       []string{"120.36 soles", "123.60 soles", "102.00 soles", "118.80 soles"},
			CorrectAnswer: "120.36 soles",
			Explanation:   "Con descuento: 120 × 0.85 = 102. Con impuesto: 102 × 1.18 = 120.36 soles.",
		},
		{
			ID: "seed-2_ALG_01-e1", ConceptID: "2_ALG_01", Difficulty: Easy,
			Question:      "Si x = 3, ¿cuál es el valor de 2x + 5?",
			Options:       []string{"11", "10", "16", "8"},
			CorrectAnswer: "11",
			Explanation:   "Sustituyendo: 2 × 3 + 5 = 6 + 5 = 11.",
		},
		{
			ID: "seed-2_ALG_01-m1", ConceptID: "2_ALG_01", Difficulty: Medium,
			Question:      "Reduce la expresión 3a + 2b − a + 4b.",
			Options:       []string{"2a + 6b", "4a + 6b", "2a + 2b", "3a + 6b"},
			CorrectAnswer: "2a + 6b",
			Explanation:   "Agrupando términos semejantes: (3a − a) + (2b + 4b) = 2a + 6b.",
		},
		{
			ID: "seed-2_ALG_02-m1", ConceptID: "2_ALG_02", Difficulty: Medium,
			Question:      "Resuelve la ecuación 3x − 7 = 14.",
			Options:       []string{"x = 7", "x = 3", "x = 21", "x = 7/3"},
			CorrectAnswer: "x = 7",
			Explanation:   "3x = 21, por lo tanto x = 21 ÷ 3 = 7.",
		},
		{
			ID: "seed-3_ALG_01-m1", ConceptID: "3_ALG_01", Difficulty: Medium,
			Question:      "¿Cuál es el grado del polinomio 4x³ − 2x² + x − 9?",
			Options:       []string{"3", "4", "2", "1"},
			CorrectAnswer: "3",
			Explanation:   "El grado es el mayor exponente de la variable, que aquí es 3.",
		},
		{
			ID: "seed-3_ALG_02-m1", ConceptID: "3_ALG_02", Difficulty: Medium,
			Question:      "Factoriza la expresión x² − 9.",
			Options:       []string{"(x − 3)(x + 3)", "(x − 3)²", "(x + 3)²", "(x − 9)(x + 1)"},
			CorrectAnswer: "(x − 3)(x + 3)",
			Explanation:   "Es una diferencia de cuadrados: x² − 3² = (x − 3)(x + 3).",
		},
		{
			ID: "seed-4_ALG_01-h1", ConceptID: "4_ALG_01", Difficulty: Hard,
			Question:      "¿Cuáles son las soluciones de x² − 5x + 6 = 0?",
			Options:       []string{"x = 2 y x = 3", "x = −2 y x = −3", "x = 1 y x = 6", "x = −1 y x = 6"},
			CorrectAnswer: "x = 2 y x = 3",
			Explanation:   "Factorizando: (x − 2)(x − 3) = 0, entonces x = 2 o x = 3.",
		},
		{
			ID: "seed-5_ALG_01-h1", ConceptID: "5_ALG_01", Difficulty: Hard,
			Question:      "¿Cuál es el valor de log₂ 32?",
			Options:       []string{"5", "4", "6", "16"},
			CorrectAnswer: "5",
			Explanation:   "2⁵ = 32, por lo tanto log₂ 32 = 5.",
		},
		{
			ID: "seed-1_GEO_01-e1", ConceptID: "1_GEO_01", Difficulty: Easy,
			Question:      "Dos ángulos complementarios suman 90°. Si uno mide 35°, ¿cuánto mide el otro?",
			Options:       []string{"55°", "65°", "145°", "45°"},
			CorrectAnswer: "55°",
			Explanation:   "90° − 35° = 55°.",
		},
		{
			ID: "seed-2_GEO_01-m1", ConceptID: "2_GEO_01", Difficulty: Medium,
			Question:      "En un triángulo, dos ángulos miden 48° y 67°. ¿Cuánto mide el tercero?",
			Options:       []string{"65°", "75°", "55°", "85°"},
			CorrectAnswer: "65°",
			Explanation:   "Los ángulos internos suman 180°: 180° − 48° − 67° = 65°.",
		},
		{
			ID: "seed-3_GEO_01-m1", ConceptID: "3_GEO_01", Difficulty: Medium,
			Question:      "¿Cuál es la longitud de una circunferencia de radio 5 cm? (usa π ≈ 3.14)",
			Options:       []string{"31.4 cm", "15.7 cm", "78.5 cm", "25 cm"},
			CorrectAnswer: "31.4 cm",
			Explanation:   "L = 2πr = 2 × 3.14 × 5 = 31.4 cm.",
		},
		{
			ID: "seed-4_GEO_01-h1", ConceptID: "4_GEO_01", Difficulty: Hard,
			Question:      "En un triángulo rectángulo, el cateto opuesto a un ángulo mide 3 y la hipotenusa 5. ¿Cuál es el seno del ángulo?",
			Options:       []string{"3/5", "4/5", "3/4", "5/3"},
			CorrectAnswer: "3/5",
			Explanation:   "sen = cateto opuesto / hipotenusa = 3/5.",
		},
	}
}

// NewSeededBank returns a bank preloaded with the handwritten items.
func NewSeededBank(rng *rand.Rand) (*Bank, error) {
	b := NewBank(rng)
	for _, it := range seedItems() {
		if err := b.Add(it); err != nil {
			return nil, err
		}
	}
	return b, nil
}
