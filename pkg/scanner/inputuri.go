package scanner

import (
	"context"
	"regexp"

	"jobsift/pkg/linestream"
)

// Logged by the filesystem layer when a mapper opens its input split, e.g.
//
//	2010-07-27 17:54:54,344 INFO org.apache.hadoop.fs.s3native.NativeS3FileSystem (main): Opening 's3://yourbucket/logs/2010/07/23/log2-00077.gz' for reading
var openForReadingRE = regexp.MustCompile(`^.*: Opening '(.*)' for reading$`)

// FindMapperInput scans task syslog for the first input URI opened for
// reading and returns it. Later opens are ignored. found is false when no
// open-for-reading line exists.
func FindMapperInput(ctx context.Context, src linestream.Source) (uri string, found bool, err error) {
	for {
		line, ok, err := advance(ctx, src)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, nil
		}
		if m := openForReadingRE.FindStringSubmatch(linestream.TrimLineEnd(line)); m != nil {
			return m[1], true, nil
		}
	}
}
