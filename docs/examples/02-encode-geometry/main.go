package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/mif/pkg/mif"
)

func main() {
	// Polygon with one hole
	text, ok, err := mif.EncodeWKT("POLYGON((0 0,0 10,10 10,10 0,0 0),(2 2,2 4,4 4,4 2,2 2))")
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		log.Fatal("not a polygon")
	}
	fmt.Print(text)

	// Grouping keys come from the text before "("
	for _, marking := range []string{"ROAD (A1)", "ROAD (B2)", "RIVER"} {
		fmt.Printf("%-10s -> %s\n", marking, mif.DeriveKey(marking))
	}

	// Inspect a dataset without writing anything
	info, err := mif.Inspect("CADPLAN.mif")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(info)
}
