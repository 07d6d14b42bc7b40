package conceptgraph

// DefaultCurriculum returns the built-in secondary-school math curriculum.
// IDs follow the <grade>_<subject>_<nn> convention from the original
// knowledge graph export.
func DefaultCurriculum() ([]Concept, []Edge) {
	concepts := []Concept{
		{ID: "1_ARIT_01", Name: "Números naturales", Subject: "Aritmética", Grade: "1ro de secundaria"},
		{ID: "1_ARIT_02", Name: "Números enteros", Subject: "Aritmética", Grade: "1ro de secundaria"},
		{ID: "1_ARIT_03", Name: "Fracciones", Subject: "Aritmética", Grade: "1ro de secundaria"},
		{ID: "2_ARIT_01", Name: "Números decimales", Subject: "Aritmética", Grade: "2do de secundaria"},
		{ID: "2_ARIT_02", Name: "Proporcionalidad", Subject: "Aritmética", Grade: "2do de secundaria"},
		{ID: "3_ARIT_01", Name: "Porcentajes", Subject: "Aritmética", Grade: "3ro de secundaria"},
		{ID: "2_ALG_01", Name: "Expresiones algebraicas", Subject: "Álgebra", Grade: "2do de secundaria"},
		{ID: "2_ALG_02", Name: "Ecuaciones de primer grado", Subject: "Álgebra", Grade: "2do de secundaria"},
		{ID: "3_ALG_01", Name: "Polinomios", Subject: "Álgebra", Grade: "3ro de secundaria"},
		{ID: "3_ALG_02", Name: "Factorización", Subject: "Álgebra", Grade: "3ro de secundaria"},
		{ID: "4_ALG_01", Name: "Ecuaciones cuadráticas", Subject: "Álgebra", Grade: "4to de secundaria"},
		{ID: "5_ALG_01", Name: "Logaritmos", Subject: "Álgebra", Grade: "5to de secundaria"},
		{ID: "1_GEO_01", Name: "Ángulos", Subject: "Geometría", Grade: "1ro de secundaria"},
		{ID: "2_GEO_01", Name: "Triángulos", Subject: "Geometría", Grade: "2do de secundaria"},
		{ID: "3_GEO_01", Name: "Circunferencia", Subject: "Geometría", Grade: "3ro de secundaria"},
		{ID: "4_GEO_01", Name: "Trigonometría básica", Subject: "Geometría", Grade: "4to de secundaria"},
	}

	edges := []Edge{
		{From: "1_ARIT_01", To: "1_ARIT_02"},
		{From: "1_ARIT_02", To: "1_ARIT_03"},
		{From: "1_ARIT_03", To: "2_ARIT_01"},
		{From: "2_ARIT_01", To: "2_ARIT_02"},
		{From: "2_ARIT_02", To: "3_ARIT_01"},
		{From: "1_ARIT_02", To: "2_ALG_01"},
		{From: "2_ALG_01", To: "2_ALG_02"},
		{From: "2_ALG_01", To: "3_ALG_01"},
		{From: "3_ALG_01", To: "3_ALG_02"},
		{From: "2_ALG_02", To: "4_ALG_01"},
		{From: "3_ALG_02", To: "4_ALG_01"},
		{From: "4_ALG_01", To: "5_ALG_01"},
		{From: "1_GEO_01", To: "2_GEO_01"},
		{From: "2_GEO_01", To: "3_GEO_01"},
		{From: "2_GEO_01", To: "4_GEO_01"},
	}

	return concepts, edges
}

// LoadDefault builds the graph from the built-in curriculum.
// The seed graph is validated by tests, so this never fails in practice.
func LoadDefault() (*Graph, error) {
	return Load(DefaultCurriculum())
}
