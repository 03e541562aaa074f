package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"athenaeum/clients"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

// detectMimeType detects the content type of a multipart file. The file is
// read fully into a buffer first; parsing the multipart file twice corrupts
// it, so the buffer is what gets uploaded later.
func (s *service) detectMimeType(file multipart.File, fileHeader *multipart.FileHeader) ([]byte, *mimetype.MIME, error) {
	size := fileHeader.Size
	buffer := make([]byte, size)
	_, err := file.Read(buffer)
	if err != nil {
		return nil, nil, err
	}
	mtype := mimetype.Detect(buffer)
	return buffer, mtype, nil
}

// uploadCoverToS3 saves a cover image to the aws bucket and returns the
// public URL of the uploaded object. The filename only contributes its
// extension to the object key.
func (s *service) uploadCoverToS3(client *s3.Client, buffer []byte, mtype *mimetype.MIME, filename string) (string, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}
	uploader := manager.NewUploader(client)
	key := "bookcovers/" + strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)) + filepath.Ext(filename)
	_, err = uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buffer),
		ContentLength: *aws.Int64(int64(len(buffer))),
		ContentType:   aws.String(mtype.String()),
	})
	if err != nil {
		return "", err
	}
	return "https://" + s.config.S3.Bucket + ".s3." + s.config.S3.Region + ".amazonaws.com/" + key, nil
}

// downloadCover fetches a cover image from a remote URL and detects its
// content type. Downloads are capped at 10MB.
func (s *service) downloadCover(url string) ([]byte, *mimetype.MIME, error) {
	httpClient := clients.NewHTTPClient()
	resp, err := (*http.Client)(httpClient).Get(url)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("fetching cover from %s: %s", url, resp.Status)
	}
	buffer, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, nil, err
	}
	mtype := mimetype.Detect(buffer)
	return buffer, mtype, nil
}

// background launches a background goroutine and recovers from panics inside
// the goroutine. It accepts an arbitrary function as a parameter and executes
// the function parameter inside the goroutine.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}
