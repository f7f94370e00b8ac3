package arbor_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/arbor"
)

// Example_basic demonstrates how to open a store, create a note, and
// list the tree.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "arbor-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// Open the service; the root directory is created on demand.
	svc, err := arbor.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Create a note inside a nested group
	note, err := svc.CreateNote(ctx, "groceries", "Personal/Lists", "milk, eggs")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created: %s\n", note.Path)

	// 2. Scan the tree
	snap, err := svc.Scan(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Notes: %d\n", len(snap.Notes))
	// Output:
	// Created: Personal/Lists/groceries.md
	// Notes: 1
}

// Example_watch demonstrates reacting to changes made by other
// processes.
func Example_watch() {
	tmpDir, err := os.MkdirTemp("", "arbor-watch-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := arbor.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	// Subscribe to debounced change batches. The usual reaction is a
	// fresh Scan; events carry just enough to decide whether to bother.
	stop, err := svc.Subscribe(context.Background(), "**/*.md", func(batch arbor.Batch) {
		for _, event := range batch {
			fmt.Println(event)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	defer stop()

	// ... edit files in tmpDir from anywhere ...
}
