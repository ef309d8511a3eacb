// Package tabular decodes delimited text tables into feature matrices.
//
// The first record is a header naming the columns. WithColumns selects the
// feature columns by name; without it every column is used and must be
// numeric.
//
//	x, err := tabular.Load(ctx, blobstore.NewLocalStore("data"), "students.csv.gz",
//	    tabular.WithColumns("raisedhands", "Discussion"),
//	)
//
// Load detects gzip, zstd and lz4 compressed input from the leading magic
// bytes, so compressed and plain files can be mixed freely.
package tabular
