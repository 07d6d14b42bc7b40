package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery and accuracy per concept",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		g, err := conceptgraph.LoadDefault()
		if err != nil {
			return fmt.Errorf("load concept graph: %w", err)
		}

		ctx := context.Background()
		studentID := resolveStudent(cmd)
		repo := st.Repo()

		rows, err := repo.MasteryForStudent(ctx, studentID)
		if err != nil {
			return fmt.Errorf("load mastery: %w", err)
		}
		if len(rows) == 0 {
			fmt.Printf("No practice recorded yet for %q.\n", studentID)
			return nil
		}

		accuracy := make(map[string]store.ConceptAccuracy)
		accRows, err := repo.AccuracyByConcept(ctx, studentID)
		if err != nil {
			return fmt.Errorf("load accuracy: %w", err)
		}
		for _, a := range accRows {
			accuracy[a.ConceptID] = a
		}

		// Per-concept table in learning order.
		byID := make(map[string]store.MasteryRow, len(rows))
		for _, r := range rows {
			byID[r.ConceptID] = r
		}

		fmt.Printf("Student: %s\n\n", studentID)
		fmt.Printf("%-30s  %-12s  %8s  %9s  %9s\n",
			"Concept", "Subject", "Mastery", "Attempts", "Accuracy")
		fmt.Println(strings.Repeat("─", 76))

		type scoped struct {
			subject string
			grade   string
		}
		sums := make(map[scoped]float64)
		counts := make(map[scoped]int)

		for _, c := range g.TopologicalOrder() {
			r, ok := byID[c.ID]
			if !ok {
				continue
			}
			acc := "-"
			if a, ok := accuracy[c.ID]; ok && a.Total > 0 {
				acc = fmt.Sprintf("%.0f%%", 100*float64(a.Correct)/float64(a.Total))
			}
			fmt.Printf("%-30s  %-12s  %7.0f%%  %9d  %9s\n",
				c.Name, c.Subject, 100*r.Probability, r.Attempts, acc)

			key := scoped{c.Subject, c.Grade}
			sums[key] += r.Probability
			counts[key]++
		}

		// Averages per subject/grade over attempted concepts.
		fmt.Println()
		fmt.Println("Average mastery")
		var keys []scoped
		for k := range sums {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].subject != keys[j].subject {
				return keys[i].subject < keys[j].subject
			}
			return keys[i].grade < keys[j].grade
		})
		for _, k := range keys {
			fmt.Printf("  %-12s %-20s %5.0f%%\n", k.subject, k.grade, 100*sums[k]/float64(counts[k]))
		}

		// Weakest concepts, the review candidates.
		sort.Slice(rows, func(i, j int) bool { return rows[i].Probability < rows[j].Probability })
		fmt.Println()
		fmt.Println("Weakest concepts")
		shown := 0
		for _, r := range rows {
			c, err := g.Concept(r.ConceptID)
			if err != nil {
				continue
			}
			fmt.Printf("  %-30s %5.0f%%\n", c.Name, 100*r.Probability)
			if shown++; shown == 5 {
				break
			}
		}
		return nil
	},
}
