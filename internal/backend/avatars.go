package backend

import (
	"fmt"
	"net/url"
)

// AvatarsService derives generated-image URLs. Nothing here touches the
// network; the platform renders the image when the URL is fetched.
type AvatarsService struct {
	client *Client
}

// InitialsURL derives an avatar URL showing the initials of name. The same
// name always produces the same URL.
func (s *AvatarsService) InitialsURL(name string) string {
	params := url.Values{
		"name":    []string{name},
		"project": []string{s.client.projectID},
	}
	return fmt.Sprintf("%s/avatars/initials?%s", s.client.endpoint, params.Encode())
}
