package server

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"bridgeforum/internal/models"
	"bridgeforum/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "ana", "ana@example.com", false)
	post := testutil.CreatePost(t, env.db, user, "post", 3)
	cookie := env.login(t, user)

	resp := env.postMultipart(t, fmt.Sprintf("/comments/post/%d/comment", post.ID),
		map[string]string{"comment": "Buen trabajo"}, "image", testutil.TinyPNG(t, 4, 4), cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/forum/post/%d", post.ID), resp.Header.Get("Location"))

	var comment models.Comment
	require.NoError(t, env.db.Where("post_id = ?", post.ID).First(&comment).Error)
	assert.Equal(t, "Buen trabajo", comment.Body)
	assert.Contains(t, comment.ImageURL, "/uploads/comments/")

	resp = env.postForm(t, "/comments/post/999/comment", url.Values{"comment": {"x"}}, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.postForm(t, fmt.Sprintf("/comments/post/%d/comment", post.ID), url.Values{"comment": {" "}}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReplyToComment(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "ana", "ana@example.com", false)
	post := testutil.CreatePost(t, env.db, user, "post", 3)
	top := testutil.CreateComment(t, env.db, user, post, nil, "top")
	nested := testutil.CreateComment(t, env.db, user, post, top, "reply")
	cookie := env.login(t, user)

	resp := env.postForm(t, fmt.Sprintf("/comments/comment/%d/reply", nested.ID), url.Values{"reply": {"deeper"}}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/forum/post/%d", post.ID), resp.Header.Get("Location"))

	var reply models.Comment
	require.NoError(t, env.db.Where("body = ?", "deeper").First(&reply).Error)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID, "replies stay one level deep")
	assert.Equal(t, post.ID, reply.PostID)
}

func TestUpdateComment(t *testing.T) {
	env := newTestEnv(t)
	author := testutil.CreateUser(t, env.db, "ana", "ana@example.com", false)
	other := testutil.CreateUser(t, env.db, "luis", "luis@example.com", false)
	post := testutil.CreatePost(t, env.db, author, "post", 3)
	comment := testutil.CreateComment(t, env.db, author, post, nil, "before")
	path := fmt.Sprintf("/comments/comment/%d/edit", comment.ID)

	resp := env.postForm(t, path, url.Values{"editedComment": {"hijacked"}}, env.login(t, other))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.postForm(t, path, url.Values{"editedComment": {"after"}}, env.login(t, author))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/forum/post/%d", post.ID), resp.Header.Get("Location"))

	var stored models.Comment
	require.NoError(t, env.db.First(&stored, comment.ID).Error)
	assert.Equal(t, "after", stored.Body)
}

func TestDeleteComment(t *testing.T) {
	env := newTestEnv(t)
	author := testutil.CreateUser(t, env.db, "ana", "ana@example.com", false)
	other := testutil.CreateUser(t, env.db, "luis", "luis@example.com", false)
	post := testutil.CreatePost(t, env.db, author, "post", 3)
	comment := testutil.CreateComment(t, env.db, author, post, nil, "bye")
	testutil.CreateComment(t, env.db, other, post, comment, "reply")
	path := fmt.Sprintf("/comments/comment/%d/delete", comment.ID)

	resp := env.postForm(t, path, nil, env.login(t, other))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.postForm(t, path, nil, env.login(t, author))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Comentario eliminado", readBody(t, resp))

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
}
