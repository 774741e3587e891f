package scanner

import (
	"context"
	"reflect"
	"testing"

	"jobsift/pkg/linestream"
)

func TestFindJavaStackTrace(t *testing.T) {
	ctx := context.Background()

	// The NameError line is a decoy: it precedes the child-error warning
	// and must not be mistaken for the trace start.
	lines := []string{
		"java.lang.NameError: \"Oak\" was one character shorter\n",
		"2010-07-27 18:25:48,397 WARN org.apache.hadoop.mapred.TaskTracker (main): Error running child\n",
		"java.lang.OutOfMemoryError: Java heap space\n",
		"        at org.apache.hadoop.mapred.IFile$Reader.readNextBlock(IFile.java:270)\n",
		"BLARG\n",
		"        at org.apache.hadoop.mapred.IFile$Reader.next(IFile.java:332)\n",
	}

	trace, err := FindJavaStackTrace(ctx, linestream.Lines(lines))
	if err != nil {
		t.Fatalf("FindJavaStackTrace() error = %v", err)
	}

	want := []string{
		"java.lang.OutOfMemoryError: Java heap space\n",
		"        at org.apache.hadoop.mapred.IFile$Reader.readNextBlock(IFile.java:270)\n",
	}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %#v, want %#v", trace, want)
	}
}

func TestFindJavaStackTrace_FullTrace(t *testing.T) {
	ctx := context.Background()

	lines := []string{
		"2010-07-27 18:25:48,397 WARN org.apache.hadoop.mapred.TaskTracker (main): Error running child\n",
		"java.lang.OutOfMemoryError: Java heap space\n",
		"        at org.apache.hadoop.mapred.Merger$MergeQueue.merge(Merger.java:377)\n",
		"        at org.apache.hadoop.mapred.ReduceTask.run(ReduceTask.java:277)\n",
		"        at org.apache.hadoop.mapred.TaskTracker$Child.main(TaskTracker.java:2216)\n",
		"2010-07-27 18:25:48,704 INFO org.apache.hadoop.mapred.TaskRunner (main): Runnning cleanup\n",
	}

	trace, err := FindJavaStackTrace(ctx, linestream.Lines(lines))
	if err != nil {
		t.Fatalf("FindJavaStackTrace() error = %v", err)
	}
	if !reflect.DeepEqual(trace, lines[1:5]) {
		t.Errorf("trace = %#v, want %#v", trace, lines[1:5])
	}
}

func TestFindJavaStackTrace_Absent(t *testing.T) {
	ctx := context.Background()

	streams := map[string][]string{
		"empty":          nil,
		"no marker":      {"java.lang.OutOfMemoryError: Java heap space\n"},
		"marker no body": {"2010-07-27 18:25:48,397 WARN org.apache.hadoop.mapred.TaskTracker (main): Error running child\n"},
	}

	for name, lines := range streams {
		t.Run(name, func(t *testing.T) {
			trace, err := FindJavaStackTrace(ctx, linestream.Lines(lines))
			if err != nil {
				t.Fatalf("FindJavaStackTrace() error = %v", err)
			}
			if trace != nil {
				t.Errorf("trace = %#v, want nil", trace)
			}
		})
	}
}

func TestFindJavaStackTrace_PartialAtEOF(t *testing.T) {
	ctx := context.Background()

	lines := []string{
		"2010-07-27 18:25:48,397 WARN org.apache.hadoop.mapred.TaskTracker (main): Error running child\n",
		"java.lang.OutOfMemoryError: Java heap space\n",
		"        at org.apache.hadoop.mapred.ReduceTask.run(ReduceTask.java:277)\n",
	}

	trace, err := FindJavaStackTrace(ctx, linestream.Lines(lines))
	if err != nil {
		t.Fatalf("FindJavaStackTrace() error = %v", err)
	}
	if !reflect.DeepEqual(trace, lines[1:]) {
		t.Errorf("trace = %#v, want %#v", trace, lines[1:])
	}
}

func TestFindJavaStackTrace_ChainedException(t *testing.T) {
	ctx := context.Background()

	lines := []string{
		"2010-07-27 18:25:48,397 WARN org.apache.hadoop.mapred.TaskTracker (main): Error running child\n",
		"java.io.IOException: Spill failed\n",
		"        at org.apache.hadoop.mapred.MapTask$MapOutputBuffer.collect(MapTask.java:425)\n",
		"java.lang.OutOfMemoryError: Java heap space\n",
		"        at org.apache.hadoop.mapred.MapTask$MapOutputBuffer$SpillThread.run(MapTask.java:712)\n",
		"done\n",
	}

	trace, err := FindJavaStackTrace(ctx, linestream.Lines(lines))
	if err != nil {
		t.Fatalf("FindJavaStackTrace() error = %v", err)
	}
	if !reflect.DeepEqual(trace, lines[1:5]) {
		t.Errorf("trace = %#v, want %#v", trace, lines[1:5])
	}
}
