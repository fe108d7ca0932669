package tableinfo

const (
	UsersTableName = "users"

	UserIDColumn           = "id"
	UserUsernameColumn     = "username"
	UserPasswordHashColumn = "password_hash"
	UserCreatedAtColumn    = "created_at"
)

const (
	GroupsTableName = "post_groups"

	GroupIDColumn          = "id"
	GroupTitleColumn       = "title"
	GroupSlugColumn        = "slug"
	GroupDescriptionColumn = "description"
)

const (
	PostsTableName = "posts"

	PostIDColumn        = "id"
	PostTextColumn      = "text"
	PostAuthorIDColumn  = "author_id"
	PostGroupIDColumn   = "group_id"
	PostImageColumn     = "image"
	PostCreatedAtColumn = "created_at"
)

const (
	CommentsTableName = "comments"

	CommentIDColumn        = "id"
	CommentPostIDColumn    = "post_id"
	CommentAuthorIDColumn  = "author_id"
	CommentTextColumn      = "text"
	CommentCreatedAtColumn = "created_at"
)

const (
	FollowsTableName = "follows"

	FollowIDColumn        = "id"
	FollowUserIDColumn    = "user_id"
	FollowAuthorIDColumn  = "author_id"
	FollowCreatedAtColumn = "created_at"
)

// Qualified prefixes a column with a table alias.
func Qualified(alias, column string) string {
	return alias + "." + column
}
