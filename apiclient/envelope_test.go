package apiclient_test

import (
	"testing"

	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func ids(items []gjson.Result) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.Get("id").Int())
	}
	return out
}

func TestUnwrapList_Shapes(t *testing.T) {
	shapes := map[string]string{
		"bare":          `[{"id":1},{"id":2}]`,
		"data":          `{"data":[{"id":1},{"id":2}]}`,
		"items":         `{"items":[{"id":1},{"id":2}]}`,
		"success data":  `{"success":true,"data":[{"id":1},{"id":2}]}`,
		"upper Data":    `{"Data":[{"id":1},{"id":2}]}`,
		"feedbacks key": `{"feedbacks":[{"id":1},{"id":2}],"total":2}`,
		"nested users":  `{"success":true,"data":{"users":[{"id":1},{"id":2}],"total":2}}`,
	}
	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			items, ok := apiclient.UnwrapList([]byte(body), "feedbacks", "data.users")
			require.True(t, ok)
			require.Equal(t, []int64{1, 2}, ids(items))
		})
	}
}

func TestUnwrapList_Unknown(t *testing.T) {
	for _, body := range []string{`{"count":3}`, `"text"`, ``, `null`} {
		items, ok := apiclient.UnwrapList([]byte(body))
		require.False(t, ok, body)
		require.NotNil(t, items)
		require.Empty(t, items)
	}

	items, ok := apiclient.UnwrapList([]byte(`[]`))
	require.True(t, ok)
	require.Empty(t, items)
}

func TestUnwrapObject(t *testing.T) {
	require.Equal(t, "Hi", apiclient.UnwrapObject([]byte(`{"success":true,"data":{"title":"Hi"}}`)).Get("title").String())
	require.Equal(t, "Hi", apiclient.UnwrapObject([]byte(`{"title":"Hi"}`)).Get("title").String())
	require.Equal(t, int64(4), apiclient.UnwrapObject([]byte(`{"stats":{"total":4}}`), "stats").Get("total").Int())
}
