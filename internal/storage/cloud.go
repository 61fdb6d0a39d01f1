package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jaydenbeard/gotham-ecdsa/internal/metrics"
)

// bucket is the single MinIO bucket all artifacts live under. Object-storage
// bucket names forbid the uppercase letters and underscores the original
// table-naming scheme uses (e.g. "{env}_MasterKey"), so the logical table
// name is carried as an object-key prefix instead of an actual bucket name.
const bucket = "gotham-store"

// Cloud is a MinIO-backed persistence backend. It repurposes the object
// store already wired for presigned media URLs as a generic document store:
// each artifact kind gets a logical table name, and each artifact is an
// object named "{table}/{customerID}/{sessionID}.json".
type Cloud struct {
	client *minio.Client
	env    string
}

// NewCloud creates a MinIO-backed Store, creating the backing bucket if it
// does not already exist.
func NewCloud(ctx context.Context, endpoint, accessKey, secretKey string, useSSL bool, env string) (*Cloud, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &Cloud{client: client, env: env}, nil
}

// tableName implements the backward-compatibility split: every kind gets
// "{env}-gotham-{kind}" except MasterKey, which keeps the legacy
// "{env}_MasterKey" name.
func tableName(env string, kind Kind) string {
	if kind == KindMasterKey {
		return fmt.Sprintf("%s_MasterKey", env)
	}
	return fmt.Sprintf("%s-gotham-%s", env, kind)
}

func (c *Cloud) objectName(customerID, sessionID string, kind Kind) string {
	return fmt.Sprintf("%s/%s/%s.json", tableName(c.env, kind), customerID, sessionID)
}

func (c *Cloud) Insert(ctx context.Context, customerID, sessionID string, kind Kind, value interface{}) (err error) {
	defer func() { metrics.RecordStorageOp("cloud", "insert", err) }()

	raw, err := marshalRecord(value)
	if err != nil {
		return err
	}

	objectName := c.objectName(customerID, sessionID, kind)
	_, err = c.client.PutObject(ctx, bucket, objectName, bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (c *Cloud) Get(ctx context.Context, customerID, sessionID string, kind Kind, out interface{}) (found bool, err error) {
	defer func() { metrics.RecordStorageOp("cloud", "get", err) }()

	objectName := c.objectName(customerID, sessionID, kind)

	obj, err := c.client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return false, err
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, err
	}
	if len(raw) == 0 {
		// MinIO returns an empty body instead of an error for a missing
		// object on some backends; Stat to disambiguate from a genuinely
		// empty artifact.
		if _, statErr := c.client.StatObject(ctx, bucket, objectName, minio.StatObjectOptions{}); statErr != nil {
			return false, nil
		}
	}

	if err := unmarshalRecord(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// HasActiveShare runs a strongly-consistent listing against the MasterKey
// table for the customer, filtered by customerId/isDeleted, playing the
// role a consistent-read indexed query would in a document database.
func (c *Cloud) HasActiveShare(ctx context.Context, customerID string) (bool, error) {
	prefix := fmt.Sprintf("%s/%s/", tableName(c.env, KindMasterKey), customerID)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range c.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return false, obj.Err
		}

		raw, err := c.getRaw(ctx, obj.Key)
		if err != nil {
			return false, err
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return false, err
		}
		if !rec.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

// MarkDeleted fetches the existing record, flips its is_deleted flag, and
// writes it back under the same object name.
func (c *Cloud) MarkDeleted(ctx context.Context, customerID, sessionID string, kind Kind) error {
	objectName := c.objectName(customerID, sessionID, kind)

	raw, err := c.getRaw(ctx, objectName)
	if err != nil {
		if isNoSuchKey(err) {
			return ErrNotFound
		}
		return err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return err
	}
	rec.IsDeleted = true

	out, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = c.client.PutObject(ctx, bucket, objectName, bytes.NewReader(out), int64(len(out)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (c *Cloud) getRaw(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey"
}
