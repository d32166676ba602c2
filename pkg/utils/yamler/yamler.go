package yamler

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Builders for ordered yaml.Node trees. Mapping keys keep the order
// they are written in, which plain map marshalling does not guarantee.

type Option func(*yaml.Node) *yaml.Node

func WithStyle(s yaml.Style) Option {
	return func(n *yaml.Node) *yaml.Node {
		n.Style = s
		return n
	}
}

func WithHeadComment(comment string) Option {
	return func(n *yaml.Node) *yaml.Node {
		n.HeadComment = comment
		return n
	}
}

func apply(n *yaml.Node, options []Option) *yaml.Node {
	for _, opt := range options {
		n = opt(n)
	}
	return n
}

func Text(value string, options ...Option) *yaml.Node {
	return apply(&yaml.Node{Kind: yaml.ScalarNode, Value: value}, options)
}

// QText is Text with double quotes forced, for values that must stay
// strings no matter what they contain.
func QText(value string, options ...Option) *yaml.Node {
	return Text(value, append([]Option{WithStyle(yaml.DoubleQuotedStyle)}, options...)...)
}

func Bool(b bool, options ...Option) *yaml.Node {
	value := "false"
	if b {
		value = "true"
	}
	return apply(&yaml.Node{Kind: yaml.ScalarNode, Value: value}, options)
}

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func Number[N Numeric](n N, options ...Option) *yaml.Node {
	return apply(&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(n)}, options)
}

func Null() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: "null"}
}

// Seq builds a sequence node. With no elements it encodes as the
// literal "[]" rather than an omitted key.
func Seq(s ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: s}
}

type MapEntry struct {
	Key   *yaml.Node
	Value *yaml.Node
}

func Entry(k *yaml.Node, v *yaml.Node) MapEntry {
	return MapEntry{Key: k, Value: v}
}

func Map(e ...MapEntry) *yaml.Node {
	content := []*yaml.Node{}

	for _, ee := range e {
		content = append(content, ee.Key)
		content = append(content, ee.Value)
	}

	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}
