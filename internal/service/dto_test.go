package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		form   any
		fields map[string][]string
	}{
		{
			name:   "valid post",
			form:   PostForm{Text: "text"},
			fields: nil,
		},
		{
			name:   "missing post text",
			form:   PostForm{},
			fields: map[string][]string{"text": {msgRequired}},
		},
		{
			name:   "missing comment text",
			form:   CommentForm{},
			fields: map[string][]string{"text": {msgRequired}},
		},
		{
			name: "short password",
			form: SignUpForm{Username: "auth", Password: "123"},
			fields: map[string][]string{
				"password": {"Ensure this value has at least 8 characters."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := checkForm(tt.form)
			if tt.fields == nil {
				require.True(t, fe.Empty())
				return
			}
			require.Equal(t, tt.fields, fe.Fields)
			require.ErrorIs(t, fe, ErrInvalidRequest)
		})
	}
}

func TestCheckImage(t *testing.T) {
	t.Parallel()

	require.Empty(t, checkImage(&Upload{Filename: "small.gif", Data: smallGIF}))
	require.Equal(t, msgInvalidImage, checkImage(&Upload{Filename: "a.gif", Data: []byte("not an image")}))
	require.Equal(t, msgEmptyFile, checkImage(&Upload{Filename: "a.gif"}))
}

func TestFormError_Error(t *testing.T) {
	t.Parallel()

	fe := &FormError{}
	fe.Add("text", msgRequired)
	fe.Add("group", msgInvalidChoice)

	require.Equal(t, "form: group: "+msgInvalidChoice+"; text: "+msgRequired, fe.Error())
}
