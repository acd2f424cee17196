// Command assess scores one transcript against an expected phrase and prints
// the result as JSON.
//
//	assess -expected "I am happy" -actual "I am hapy"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mind-engage/mindengage-speaking/internal/pronunciation"
)

func main() {
	expected := flag.String("expected", "", "phrase the learner was asked to say")
	actual := flag.String("actual", "", "recognizer transcript of what was said")
	summary := flag.Bool("summary", false, "print a one-line summary instead of JSON")
	flag.Parse()

	a := pronunciation.Assess(*expected, *actual)
	if *summary {
		fmt.Printf("overall=%.2f accuracy=%.2f completeness=%.2f fluency=%.2f grade=%s\n",
			a.OverallScore, a.Accuracy, a.Completeness, a.Fluency, a.Grade)
		for _, f := range a.Feedback {
			fmt.Println("  -", f)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
