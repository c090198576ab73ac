// Package services is the boundary every front-end talks to. Each operation
// checks the session role before touching the registry:
//
//   - AuthService: register, log in and out, inspect the current user.
//   - ClassroomService: teacher-only class management, student-only quest and
//     goal actions, and progress export for any logged-in user.
//
// Role checks fail with common.ErrNotLoggedIn or common.ErrNotAuthorized.
package services
