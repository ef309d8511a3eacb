// Package minio implements blobstore.Store on MinIO and other S3-compatible
// object storage.
//
//	client, _ := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	store := kminio.NewStore(client, "datasets", "")
package minio
