package main

import (
	"context"
	"fmt"
	"log"

	"github.com/beetlebugorg/mif/pkg/mif"
)

func main() {
	// Group CADPLAN.mif by MARKING and write one file per origin to ./new
	cfg := mif.DefaultConfig()
	cfg.Input = "CADPLAN.mif"

	summary, err := mif.Run(context.Background(), cfg, mif.DefaultRunOptions())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Records: %d (%d encodable)\n", summary.Records, summary.Encoded)
	fmt.Printf("Groups: %d\n", summary.Rows)
	for _, name := range summary.Files {
		fmt.Printf("  %s\n", name)
	}
}
