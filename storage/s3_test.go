package storage

import "testing"

func TestPhotoArchivePublicURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  S3Config
		key  string
		want string
	}{
		{
			name: "aws",
			cfg:  S3Config{Bucket: "onsia-photos", Region: "ap-northeast-2"},
			key:  "auction-photos/ab/abc123.jpg",
			want: "https://onsia-photos.s3.ap-northeast-2.amazonaws.com/auction-photos/ab/abc123.jpg",
		},
		{
			name: "do spaces",
			cfg:  S3Config{Bucket: "onsia-photos", Endpoint: "https://sgp1.digitaloceanspaces.com"},
			key:  "auction-photos/ab/abc123.jpg",
			want: "https://onsia-photos.sgp1.digitaloceanspaces.com/auction-photos/ab/abc123.jpg",
		},
	}
	for _, tc := range cases {
		a := &PhotoArchive{cfg: tc.cfg}
		if got := a.PublicURL(tc.key); got != tc.want {
			t.Errorf("%s: PublicURL = %s, want %s", tc.name, got, tc.want)
		}
	}
}
