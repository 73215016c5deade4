package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

var (
	userColumns     = []string{"id", "login", "password_hash", "created_at"}
	bookmarkColumns = []string{"id", "user_id", "content_type", "content_id", "title", "description", "url", "created_at"}
	tagColumns      = []string{"id", "name", "user_id", "created_at"}
)

func insertUserQuery(b sq.StatementBuilderType, id, login, passwordHash string, createdAt time.Time) sq.InsertBuilder {
	return b.Insert("users").
		Columns(userColumns...).
		Values(id, login, passwordHash, createdAt)
}

func findUserByLoginQuery(b sq.StatementBuilderType, login string) sq.SelectBuilder {
	return b.Select(userColumns...).
		From("users").
		Where(sq.Eq{"login": login})
}

func listBookmarksQuery(b sq.StatementBuilderType, userID string) sq.SelectBuilder {
	return b.Select(bookmarkColumns...).
		From("bookmarks").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")
}

// listBookmarkTagsQuery selects every (bookmark, tag) pair of the user in a
// single pass, used to hydrate the result of listBookmarksQuery.
func listBookmarkTagsQuery(b sq.StatementBuilderType, userID string) sq.SelectBuilder {
	return b.Select("bt.bookmark_id", "t.id", "t.name", "t.user_id", "t.created_at").
		From("bookmark_tags bt").
		Join("tags t ON t.id = bt.tag_id").
		Where(sq.Eq{"t.user_id": userID}).
		OrderBy("t.name", "t.id")
}

func insertBookmarkQuery(b sq.StatementBuilderType, id, userID, contentType, contentID, title string, description, url *string, createdAt time.Time) sq.InsertBuilder {
	return b.Insert("bookmarks").
		Columns(bookmarkColumns...).
		Values(id, userID, contentType, contentID, title, description, url, createdAt)
}

func deleteBookmarkQuery(b sq.StatementBuilderType, userID, bookmarkID string) sq.DeleteBuilder {
	return b.Delete("bookmarks").
		Where(sq.Eq{"id": bookmarkID}).
		Where(sq.Eq{"user_id": userID})
}

func ownedRowQuery(b sq.StatementBuilderType, table, userID, id string) sq.SelectBuilder {
	return b.Select("1").
		From(table).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": userID})
}

func attachTagQuery(b sq.StatementBuilderType, bookmarkID, tagID string) sq.InsertBuilder {
	return b.Insert("bookmark_tags").
		Columns("bookmark_id", "tag_id").
		Values(bookmarkID, tagID).
		Suffix("ON CONFLICT DO NOTHING")
}

// detachTagQuery removes one association. The sub-select keeps the delete
// inside the bookmarks owned by userID.
func detachTagQuery(b sq.StatementBuilderType, userID, bookmarkID, tagID string) sq.DeleteBuilder {
	return b.Delete("bookmark_tags").
		Where(sq.Eq{"bookmark_id": bookmarkID}).
		Where(sq.Eq{"tag_id": tagID}).
		Where(sq.Expr("bookmark_id IN (SELECT id FROM bookmarks WHERE user_id = ?)", userID))
}

func listTagsQuery(b sq.StatementBuilderType, userID string) sq.SelectBuilder {
	return b.Select(tagColumns...).
		From("tags").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name", "created_at")
}

// findTagByNameQuery returns the oldest tag with the exact name. Names are
// unique per user only on a best-effort basis, so duplicates may exist.
func findTagByNameQuery(b sq.StatementBuilderType, userID, name string) sq.SelectBuilder {
	return b.Select(tagColumns...).
		From("tags").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"name": name}).
		OrderBy("created_at", "id").
		Limit(1)
}

func insertTagQuery(b sq.StatementBuilderType, id, name, userID string, createdAt time.Time) sq.InsertBuilder {
	return b.Insert("tags").
		Columns(tagColumns...).
		Values(id, name, userID, createdAt)
}

func deleteTagQuery(b sq.StatementBuilderType, userID, tagID string) sq.DeleteBuilder {
	return b.Delete("tags").
		Where(sq.Eq{"id": tagID}).
		Where(sq.Eq{"user_id": userID})
}
