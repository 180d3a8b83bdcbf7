package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/schollz/progressbar/v3"

	"salesdash/internal/enhance"
	"salesdash/internal/models"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	in := flag.String("in", "site/data/latest.json", "input dataset")
	out := flag.String("out", "site/data/enhanced_latest.json", "output dataset")
	seed := flag.Int64("seed", 0, "random seed; 0 uses the clock")
	flag.Parse()

	content, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}
	var ds models.Dataset
	if err := json.Unmarshal(content, &ds); err != nil {
		log.Fatalf("decode %s: %v", *in, err)
	}
	log.Printf("Enhancing %d records from %s", len(ds.Records), *in)

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	bar := progressbar.Default(int64(len(ds.Records)))
	enhance.Dataset(&ds, rng, func(done, total int) {
		_ = bar.Add(1)
	})

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("Wrote %s (%d records)", *out, len(ds.Records))
}
