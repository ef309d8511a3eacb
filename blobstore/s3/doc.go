// Package s3 implements blobstore.Store on Amazon S3.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "datasets/")
//	rc, err := store.Open(ctx, "students.csv.gz")
//
// Objects are streamed with a single GetObject request.
package s3
