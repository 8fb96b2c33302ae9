package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/domain"
	kuser "github.com/taskboard/taskboard/pkg/domain/user/db"
)

const userNotFound = "User not found"

func composeUsers(users []domain.User, clock Clock) []apiusers.Detail {
	today := clock.today()
	resp := make([]apiusers.Detail, 0, len(users))
	for _, u := range users {
		resp = append(resp, apiusers.ComposeDetail(u, today))
	}
	return resp
}

func CreateUserHandler(dbUser kuser.UserInterface, clock Clock) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bind[apiusers.Spec](c)
		if err != nil {
			return err
		}
		spec := req.Domain()
		if err := spec.Validate(clock.today()); err != nil {
			return invalid(err)
		}

		user, err := dbUser.Create(c.Request().Context(), spec)
		if err != nil {
			return fromDB(err, userNotFound)
		}
		return c.JSON(http.StatusCreated, apiusers.ComposeDetail(user, clock.today()))
	}
}

// ListUserHandler responds users. Query parameter "name" narrows them down.
func ListUserHandler(dbUser kuser.UserInterface, clock Clock) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := domain.UserQuery{Name: strings.TrimSpace(c.QueryParam("name"))}
		users, err := dbUser.List(c.Request().Context(), query)
		if err != nil {
			return fromDB(err, userNotFound)
		}
		return c.JSON(http.StatusOK, composeUsers(users, clock))
	}
}

func GetUserHandler(dbUser kuser.UserInterface, clock Clock, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c, param)
		if err != nil {
			return err
		}
		user, err := dbUser.Get(c.Request().Context(), id)
		if err != nil {
			return fromDB(err, userNotFound)
		}
		return c.JSON(http.StatusOK, apiusers.ComposeDetail(user, clock.today()))
	}
}

func UpdateUserHandler(dbUser kuser.UserInterface, clock Clock, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c, param)
		if err != nil {
			return err
		}
		req, err := bind[apiusers.Spec](c)
		if err != nil {
			return err
		}
		spec := req.Domain()
		if err := spec.Validate(clock.today()); err != nil {
			return invalid(err)
		}

		user, err := dbUser.Update(c.Request().Context(), id, spec)
		if err != nil {
			return fromDB(err, userNotFound)
		}
		return c.JSON(http.StatusOK, apiusers.ComposeDetail(user, clock.today()))
	}
}

func DeleteUserHandler(dbUser kuser.UserInterface, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c, param)
		if err != nil {
			return err
		}
		if err := dbUser.Delete(c.Request().Context(), id); err != nil {
			return fromDB(err, userNotFound)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
