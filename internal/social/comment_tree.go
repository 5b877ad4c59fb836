package social

import (
	"connectrealm/internal/dbmysql"
)

// CommentNode is a comment with its nested replies.
type CommentNode struct {
	*dbmysql.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree arranges a flat comment list into a reply tree. Roots
// are comments without a parent; a comment whose parent is missing from the
// input is also treated as a root rather than dropped. Input order (storage
// returns ascending created_at) is preserved among siblings.
func BuildCommentTree(comments []*dbmysql.Comment) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c, Replies: []*CommentNode{}}
	}

	roots := []*CommentNode{}
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
