package logging

import (
	"time"
)

// Generic field constructors

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers so call sites stay uniform across packages

func Component(name string) Field {
	return String("component", name)
}

func Node(id string) Field {
	return String("node", id)
}

func Edge(from, to string) Field {
	return String("edge", from+"->"+to)
}

func NetworkType(t string) Field {
	return String("network_type", t)
}

func Prog(p string) Field {
	return String("prog", p)
}

func Format(f string) Field {
	return String("format", f)
}

func Dataset(name string) Field {
	return String("dataset", name)
}

func RenderID(id string) Field {
	return String("render_id", id)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Nodes(n int) Field {
	return Int("nodes", n)
}

func Edges(n int) Field {
	return Int("edges", n)
}

func Path(p string) Field {
	return String("path", p)
}
