package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidplus-go/pkg/config"
	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/types"
)

type capabilityFunc func(ctx context.Context, url string) (types.Value, error)

func (f capabilityFunc) Extract(ctx context.Context, url string) (types.Value, error) {
	return f(ctx, url)
}

func newResolver(c capabilityFunc) *Resolver {
	cfg := &config.Config{PlaybackEmbedMarker: "player.vidplus.to/embed/"}
	if c == nil {
		return New(cfg, logging.Discard(), nil)
	}
	return New(cfg, logging.Discard(), c)
}

func TestResolve_Empty(t *testing.T) {
	assert.Nil(t, newResolver(nil).Resolve(context.Background(), ""))
}

func TestResolve_EmbedURL(t *testing.T) {
	called := false
	r := newResolver(func(context.Context, string) (types.Value, error) {
		called = true
		return types.String("https://cdn.example.com/x.m3u8"), nil
	})

	got := r.Resolve(context.Background(), "https://player.vidplus.to/embed/tv/1399/1/1?server=3")
	require.NotNil(t, got)
	assert.Equal(t, "https://player.vidplus.to/embed/tv/1399/1/1?server=1", *got)
	assert.False(t, called, "embed URLs are normalized, not extracted")

	again := r.Resolve(context.Background(), *got)
	require.NotNil(t, again)
	assert.Equal(t, *got, *again)
	assert.Equal(t, 1, strings.Count(*again, "server="))
}

func TestResolve_NoCapabilityIsIdentity(t *testing.T) {
	in := "https://mixdrop.ag/e/abc123"
	got := newResolver(nil).Resolve(context.Background(), in)
	require.NotNil(t, got)
	assert.Equal(t, in, *got)
}

func TestResolve_ExtractionIsPublicOnly(t *testing.T) {
	tests := []struct {
		name         string
		allowPrivate bool
		wantPublic   bool
	}{
		{name: "default", wantPublic: true},
		{name: "private hosts allowed", allowPrivate: true, wantPublic: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var publicOnly bool
			capability := capabilityFunc(func(ctx context.Context, _ string) (types.Value, error) {
				publicOnly = httpclient.IsPublicOnly(ctx)
				return nil, nil
			})
			cfg := &config.Config{
				PlaybackEmbedMarker:    "player.vidplus.to/embed/",
				ExtractorsAllowPrivate: tt.allowPrivate,
			}

			in := "http://127.0.0.1:8080/admin"
			got := New(cfg, logging.Discard(), capability).Resolve(context.Background(), in)
			require.NotNil(t, got)
			assert.Equal(t, in, *got)
			assert.Equal(t, tt.wantPublic, publicOnly)
		})
	}
}

func TestResolve_PrivateAddressRefused(t *testing.T) {
	capability := capabilityFunc(func(ctx context.Context, url string) (types.Value, error) {
		return nil, fmt.Errorf("page: %w", httpclient.ErrPrivateAddress)
	})

	in := "http://169.254.169.254/latest/meta-data/"
	got := newResolver(capability).Resolve(context.Background(), in)
	require.NotNil(t, got)
	assert.Equal(t, in, *got)
}

func TestResolve_Capability(t *testing.T) {
	const page = "https://mixdrop.ag/e/abc123"

	tests := []struct {
		name string
		c    capabilityFunc
		want string
	}{
		{
			name: "candidate found",
			c: func(_ context.Context, url string) (types.Value, error) {
				return types.NewMapping(
					types.Entry{Key: "file", Value: types.String("https://cdn.example.com/v.mp4?t=1")},
					types.Entry{Key: "referer", Value: types.String(url)},
				), nil
			},
			want: "https://cdn.example.com/v.mp4?t=1",
		},
		{
			name: "no candidate",
			c: func(context.Context, string) (types.Value, error) {
				return types.Sequence{types.String("https://cdn.example.com/poster.jpg")}, nil
			},
			want: page,
		},
		{
			name: "nil result",
			c: func(context.Context, string) (types.Value, error) {
				return nil, nil
			},
			want: page,
		},
		{
			name: "capability error",
			c: func(context.Context, string) (types.Value, error) {
				return types.String("https://cdn.example.com/ignored.m3u8"), errors.New("blocked")
			},
			want: page,
		},
		{
			name: "capability panic",
			c: func(context.Context, string) (types.Value, error) {
				panic("extractor bug")
			},
			want: page,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newResolver(tt.c).Resolve(context.Background(), page)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestFindStream(t *testing.T) {
	tests := []struct {
		name   string
		value  types.Value
		want   string
		wantOK bool
	}{
		{name: "nil", value: nil},
		{name: "plain string", value: types.String("https://a/b.m3u8"), want: "https://a/b.m3u8", wantOK: true},
		{name: "uppercase suffix", value: types.String("https://a/B.MP4"), want: "https://a/B.MP4", wantOK: true},
		{name: "suffix then fragment", value: types.String("https://a/b.mp4#t=5"), want: "https://a/b.mp4#t=5", wantOK: true},
		{name: "suffix mid path", value: types.String("https://a/b.mp4/page")},
		{name: "non-media string", value: types.String("https://a/embed/1")},
		{
			name: "priority beats insertion order",
			value: types.NewMapping(
				types.Entry{Key: "file", Value: types.String("x.mp4")},
				types.Entry{Key: "url", Value: types.String("y.m3u8")},
			),
			want:   "y.m3u8",
			wantOK: true,
		},
		{
			name: "priority key without candidate falls through",
			value: types.NewMapping(
				types.Entry{Key: "url", Value: types.String("https://a/page")},
				types.Entry{Key: "src", Value: types.String("https://a/s.mp4")},
			),
			want:   "https://a/s.mp4",
			wantOK: true,
		},
		{
			name: "remaining keys in insertion order",
			value: types.NewMapping(
				types.Entry{Key: "title", Value: types.String("Fight Club")},
				types.Entry{Key: "zeta", Value: types.String("https://a/z.m3u8")},
				types.Entry{Key: "alpha", Value: types.String("https://a/a.m3u8")},
			),
			want:   "https://a/z.m3u8",
			wantOK: true,
		},
		{
			name: "sequence left to right depth first",
			value: types.Sequence{
				types.String("nope"),
				types.Sequence{types.NewMapping(types.Entry{Key: "stream", Value: types.String("https://a/deep.m3u8")})},
				types.String("https://a/later.mp4"),
			},
			want:   "https://a/deep.m3u8",
			wantOK: true,
		},
		{
			name: "nested under non-priority key",
			value: types.NewMapping(
				types.Entry{Key: "sources", Value: types.Sequence{
					types.NewMapping(types.Entry{Key: "type", Value: types.String("video/mp4")}),
					types.NewMapping(types.Entry{Key: "src", Value: types.String("https://a/s.mp4")}),
				}},
			),
			want:   "https://a/s.mp4",
			wantOK: true,
		},
		{name: "nil mapping", value: (*types.Mapping)(nil)},
		{name: "empty sequence", value: types.Sequence{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindStream(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindStream_DecodedJSON(t *testing.T) {
	v, err := types.DecodeValue([]byte(`{"meta":{"hls":"https://a/m.m3u8"},"link":"https://a/l.mp4","n":3}`))
	require.NoError(t, err)

	got, ok := FindStream(v)
	assert.True(t, ok)
	assert.Equal(t, "https://a/l.mp4", got)
}
