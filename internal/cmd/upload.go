package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/willfong/fintech-datagen/internal/config"
	"github.com/willfong/fintech-datagen/internal/objstore"
	"github.com/willfong/fintech-datagen/internal/ui"
)

var uploadInputDir string

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload generated files to S3-compatible storage",
	Long: `Copy every .csv and .csv.xz file in the output directory to a bucket
on S3, MinIO or any S3-compatible store. The bucket is created if missing.

Objects are named <prefix>/<file>, e.g. raw/raw_transactions.csv.xz.

Examples:
  datagen upload --endpoint localhost:9000 --bucket lake --secure=false
  datagen upload --endpoint s3.amazonaws.com --bucket lake --prefix raw/2025-06`,
	Run: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	d := config.DefaultConfig().Storage
	f := uploadCmd.Flags()
	f.String("endpoint", d.Endpoint, "storage endpoint (host:port)")
	f.String("bucket", d.Bucket, "destination bucket")
	f.String("prefix", d.Prefix, "object key prefix")
	f.String("region", d.Region, "bucket region")
	f.String("access-key", d.AccessKey, "access key (or DATAGEN_STORAGE_ACCESS_KEY)")
	f.String("secret-key", d.SecretKey, "secret key (or DATAGEN_STORAGE_SECRET_KEY)")
	f.Bool("secure", d.Secure, "use HTTPS")
	f.StringVar(&uploadInputDir, "input", "", "directory to upload (default: generate output dir)")

	bindFlags(uploadCmd, map[string]string{
		"endpoint":   "storage.endpoint",
		"bucket":     "storage.bucket",
		"prefix":     "storage.prefix",
		"region":     "storage.region",
		"access-key": "storage.access_key",
		"secret-key": "storage.secret_key",
		"secure":     "storage.secure",
	})
}

func runUpload(cmd *cobra.Command, args []string) {
	u := newUI()
	sc := cfg.Storage
	dir := uploadInputDir
	if dir == "" {
		dir = cfg.Generate.OutputDir
	}
	if sc.Bucket == "" {
		fail(u, "no bucket given", "Pass --bucket or set DATAGEN_STORAGE_BUCKET")
	}

	fmt.Println(u.Header("Fintech Dataset Upload"))
	fmt.Println()
	fmt.Println(u.KeyValue("Endpoint", sc.Endpoint))
	fmt.Println(u.KeyValue("Bucket", sc.Bucket))
	fmt.Println(u.KeyValue("Prefix", sc.Prefix))
	fmt.Println(u.KeyValue("Input", dir))
	fmt.Println()

	client, err := objstore.NewMinioClient(sc)
	if err != nil {
		fail(u, err.Error())
	}
	store := objstore.NewMinioObjectStore(client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spin := u.NewSpinner("Preparing bucket")
	spin.Start()
	if err := store.EnsureBucket(ctx, sc.Bucket, sc.Region); err != nil {
		spin.Error(err.Error())
		os.Exit(1)
	}
	spin.Success("ready")

	u.Section("Uploading files...")
	start := time.Now()
	uploaded, err := objstore.UploadDir(ctx, store, dir, sc.Bucket, sc.Prefix, func(up objstore.Uploaded) {
		u.PrintUploaded(up.Key, up.Size)
		log.WithField("key", up.Key).Debug("object uploaded")
	})

	var total int64
	for _, up := range uploaded {
		total += up.Size
	}
	items := []ui.KV{
		{Key: "Files", Value: fmt.Sprintf("%d", len(uploaded))},
		{Key: "Size", Value: ui.FormatBytes(total)},
		{Key: "Duration", Value: ui.FormatDuration(time.Since(start))},
	}
	items = append(items, ui.StatusKV(err == nil))
	fmt.Println(u.SummaryBox("Upload Summary", items))
	if err != nil {
		fail(u, err.Error())
	}
}
