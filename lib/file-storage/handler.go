package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"servis-takip-backend/config"
	s3client "servis-takip-backend/s3"
)

type Provider interface {
	UploadTicketImage(ctx context.Context, ticketID string, file []byte, fileName, contentType string) (objectKey string, err error)
	GetFile(ctx context.Context, objectKey string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		s3client: s3client.Client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadTicketImage(ctx context.Context, ticketID string, file []byte, fileName, contentType string) (string, error) {
	if i.s3client == nil {
		return "", errors.New("dosya deposu yapılandırılmamış")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := fmt.Sprintf("tickets/%s/%s", ticketID, fileName)
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (i impl) GetFile(ctx context.Context, objectKey string) ([]byte, error) {
	if i.s3client == nil {
		return nil, errors.New("dosya deposu yapılandırılmamış")
	}
	obj, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	return data, nil
}
