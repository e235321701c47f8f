// Command lumifox-perft runs perft node counts for a position, the standard
// correctness oracle for move generation. Counts can be recorded into the
// archive as baselines and later runs verified against them to catch
// regressions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/ArchProtogens/lumifox/internal/board"
	"github.com/ArchProtogens/lumifox/internal/perft"
	"github.com/ArchProtogens/lumifox/internal/storage"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to the starting position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at the root")
	workers := flag.Int("workers", 1, "Worker goroutines splitting the root moves (1 = sequential)")
	cacheMB := flag.Int("cache", 0, "Transposition cache size in MB (0 = no cache)")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	record := flag.Bool("record", false, "Record the node count as a baseline in the archive")
	verify := flag.Bool("verify", false, "Verify the node count against the recorded baseline")
	dbDir := flag.String("db", "", "Archive directory (defaults to the platform data directory)")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("parsing FEN: %v", err)
	}
	// Baselines are keyed by the canonical serialization
	canonicalFEN := pos.FEN()

	var table *perft.Table
	if *cacheMB > 0 {
		table = perft.NewTable(*cacheMB)
	}

	if *divide {
		results, total := perft.DivideParallel(pos, *depth, *workers, table)

		// Sort moves for stable output
		moves := make([]string, 0, len(results))
		for mv := range results {
			moves = append(moves, mv)
		}
		sort.Strings(moves)
		for _, mv := range moves {
			fmt.Printf("%s: %d\n", mv, results[mv])
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	// CPU profiling, via flag or environment
	profilePath := *cpuProf
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	// Timing loop
	var nodes int64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		if table != nil && i > 0 {
			table.Clear() // each repetition times a cold cache
		}
		nodes = perft.CountParallel(pos, *depth, *workers, table)
	}
	elapsed := time.Since(start)
	nps := float64(nodes) * float64(*repeat) / elapsed.Seconds()

	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, nodes, elapsed, nps)
	if table != nil {
		log.Printf("cache: %d entries, %.1f%% hit rate, %d/1000 full", table.Size(), table.HitRate(), table.Fill())
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatal("could not create heap profile: ", err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write heap profile: ", err)
		}
		f.Close()
	}

	if *record || *verify {
		archive := openArchive(*dbDir)
		defer archive.Close()

		if *verify {
			baseline, err := archive.LoadBaseline(canonicalFEN)
			if err != nil {
				log.Fatalf("loading baseline: %v", err)
			}
			want, ok := baseline.Nodes[*depth]
			if !ok {
				log.Fatalf("baseline for %q has no depth %d entry", canonicalFEN, *depth)
			}
			if nodes != want {
				log.Fatalf("PERFT MISMATCH: got %d nodes, baseline %d (recorded %s)",
					nodes, want, baseline.RecordedAt.Format(time.RFC3339))
			}
			fmt.Printf("verified against baseline recorded %s\n", baseline.RecordedAt.Format(time.RFC3339))
		}

		if *record {
			if err := archive.RecordPerft(canonicalFEN, *depth, nodes); err != nil {
				log.Fatalf("recording baseline: %v", err)
			}
			log.Printf("recorded baseline: depth %d = %d nodes", *depth, nodes)
		}
	}
}

func openArchive(dir string) *storage.Archive {
	var (
		archive *storage.Archive
		err     error
	)
	if dir != "" {
		archive, err = storage.Open(dir)
	} else {
		archive, err = storage.OpenDefault()
	}
	if err != nil {
		log.Fatalf("opening archive: %v", err)
	}
	return archive
}
