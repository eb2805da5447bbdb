// Package mif converts polygon features of MapInfo Interchange Format (MIF/MID)
// datasets into MIF Region blocks and writes one MIF file per output row.
//
// # Basic Usage
//
//	cfg := mif.DefaultConfig()
//	cfg.Input = "CADPLAN.mif"
//
//	summary, err := mif.Run(ctx, cfg, mif.DefaultRunOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d records, %d files\n", summary.Records, len(summary.Files))
//
// # Grouping
//
// Each record's grouping key ("origin") is the key column value up to the
// first "(", trimmed. With grouping enabled, records sharing an origin become
// one output row whose text is the member Region blocks joined with ", ":
//
//	mif.DeriveKey("ROAD (A1)") // "ROAD"
//
// The joined text is not a single valid Region block. Set merge-mode to
// "region" to encode all member polygons as one multi-polygon block instead.
//
// # Encoding Single Geometries
//
//	text, ok, err := mif.EncodeWKT("POLYGON((0 0,0 1,1 1,1 0,0 0))")
//	// text == "Region 1\n5\n0 0\n0 1\n1 1\n1 0\n0 0\n"
//
// Only polygons and multi-polygons are encodable; other kinds return ok=false.
//
// # Outputs
//
// Files are named "<row>_<origin>.mif" with ":" replaced by "_", and written to
// a local directory or an S3 prefix. An HTML table of the output rows and an
// optional Parquet export are written next to them. Setting metrics to a file
// name adds the run counters in the Prometheus text format.
package mif
