package store

import (
	"context"

	"github.com/sabilabs/sabi/ent"
	"github.com/sabilabs/sabi/ent/user"
)

type repo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *repo) EnsureUser(ctx context.Context, studentID, name string) error {
	exists, err := r.client.User.Query().
		Where(user.StudentID(studentID)).
		Exist(ctx)
	if err != nil {
		return persistErr("query user", err)
	}
	if exists {
		return nil
	}

	_, err = r.client.User.Create().
		SetStudentID(studentID).
		SetName(name).
		Save(ctx)
	if err != nil {
		return persistErr("create user", err)
	}
	return nil
}
