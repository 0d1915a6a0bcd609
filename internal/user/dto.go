package user

import "github.com/frahmantamala/planforge/internal"

type UsersResponse []*internal.User

func toResponses(users []*User) UsersResponse {
	out := make(UsersResponse, len(users))
	for i, u := range users {
		out[i] = u.Identity()
	}
	return out
}
