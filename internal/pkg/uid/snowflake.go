package uid

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates int64 ids from a node number in [0, 1023].
type Snowflake struct {
	node *snowflake.Node
}

func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}

	return &Snowflake{node: n}, nil
}

func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
