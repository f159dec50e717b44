// Package publish uploads a built page to an S3 bucket.
//
// Every output of the build is uploaded, together with the styles and
// scripts the page links to, under keys that mirror their links:
//
//	client := publish.NewClient(cfg.Publish)
//	p, err := publish.New(client, publish.Options{
//	    Bucket:       cfg.Publish.Bucket,
//	    Prefix:       cfg.Publish.Prefix,
//	    CacheControl: cfg.Publish.CacheControl,
//	})
//	objects, err := p.Publish(ctx, result)
//
// Credentials come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN.
package publish

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/hashview/internal/build"
	"github.com/vango-dev/hashview/internal/config"
	"github.com/vango-dev/hashview/internal/errors"
)

// Client is the subset of *s3.Client used by Publisher.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewClient creates an S3 client for cfg. A custom endpoint switches to
// path-style addressing, as most S3-compatible stores expect.
func NewClient(cfg config.PublishConfig) *s3.Client {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials(ctx context.Context) (aws.Credentials, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}

// Options configures a Publisher.
type Options struct {
	Bucket string

	// Prefix is prepended to every key.
	Prefix string

	// CacheControl is sent with every object when set.
	CacheControl string

	// DryRun lists the objects without uploading them.
	DryRun bool

	Logger *slog.Logger
}

// Object describes one uploaded file.
type Object struct {
	Key         string
	File        string
	ContentType string
	Size        int64
	SHA256      string
}

// Publisher uploads build results.
type Publisher struct {
	client  Client
	options Options
	logger  *slog.Logger
}

// New creates a Publisher. It fails with H161 when no bucket is set.
func New(client Client, options Options) (*Publisher, error) {
	if options.Bucket == "" {
		return nil, errors.New("H161").
			WithSuggestion("Set publish.bucket in hashview.json or pass --bucket")
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client:  client,
		options: options,
		logger:  logger.With("component", "publish", "bucket", options.Bucket),
	}, nil
}

// Objects returns what Publish would upload for result, the HTML page last.
func (p *Publisher) Objects(result *build.Result) ([]Object, error) {
	if result == nil || result.Page == nil || result.HTML == "" {
		return nil, errors.New("H160").WithDetail("the page has not been built")
	}
	page := result.Page
	// collapsed outputs replace the styles and scripts, so they dedupe here
	files := make([]string, 0, len(page.Styles)+len(page.Scripts)+len(result.Outputs))
	seen := make(map[string]bool)
	for _, list := range [][]string{page.Styles, page.Scripts, result.Outputs} {
		for _, f := range list {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	objects := make([]Object, 0, len(files))
	for _, f := range files {
		link := page.Link(f)
		if link == ".." || strings.HasPrefix(link, "../") || path.IsAbs(link) {
			return nil, errors.New("H160").
				WithDetail(f + " is outside the page root " + page.RootDir).
				WithSuggestion("Move the file under the root or set !dir to a common parent")
		}
		info, err := os.Stat(f)
		if err != nil {
			return nil, errors.New("H160").WithDetail("cannot stat " + f).Wrap(err)
		}
		sum := result.Manifest[f]
		if sum == "" {
			if sum, err = hashFile(f); err != nil {
				return nil, errors.New("H160").WithDetail("cannot read " + f).Wrap(err)
			}
		}
		objects = append(objects, Object{
			Key:         p.options.Prefix + link,
			File:        f,
			ContentType: contentType(f),
			Size:        info.Size(),
			SHA256:      sum,
		})
	}
	return objects, nil
}

// Publish uploads the objects of result in order.
func (p *Publisher) Publish(ctx context.Context, result *build.Result) ([]Object, error) {
	objects, err := p.Objects(result)
	if err != nil {
		return nil, err
	}
	if p.options.DryRun {
		for _, obj := range objects {
			p.logger.Info("would upload", "key", obj.Key, "size", obj.Size)
		}
		return objects, nil
	}

	for i, obj := range objects {
		if err := ctx.Err(); err != nil {
			return objects[:i], err
		}
		if err := p.put(ctx, obj); err != nil {
			return objects[:i], errors.New("H160").WithDetail("uploading " + obj.Key).Wrap(err)
		}
		p.logger.Info("uploaded", "key", obj.Key, "size", obj.Size)
	}
	return objects, nil
}

func (p *Publisher) put(ctx context.Context, obj Object) error {
	f, err := os.Open(obj.File)
	if err != nil {
		return err
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.options.Bucket),
		Key:           aws.String(obj.Key),
		Body:          f,
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(obj.Size),
		Metadata:      map[string]string{"sha256": obj.SHA256},
	}
	if p.options.CacheControl != "" {
		input.CacheControl = aws.String(p.options.CacheControl)
	}
	_, err = p.client.PutObject(ctx, input)
	return err
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "text/javascript; charset=utf-8"
	}
	if t := mime.TypeByExtension(filepath.Ext(file)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
