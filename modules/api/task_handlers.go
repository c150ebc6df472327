package api

import (
	"github.com/example/task-manager/modules/task"
	"github.com/gofiber/fiber/v2"
)

// createTask handles POST /api/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.OwnerID = currentUserID(c)

	resp, err := m.tasks.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// listTasks handles GET /api/tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	req := task.ListTasksRequest{
		UserID:   currentUserID(c),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
		Sort:     c.Query("sort"),
	}

	resp, err := m.tasks.List(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// getTask handles GET /api/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	resp, err := m.tasks.Get(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// updateTask handles PUT /api/tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	var req task.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)
	req.TaskID = c.Params("id")

	resp, err := m.tasks.Update(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// deleteTask handles DELETE /api/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	if err := m.tasks.Delete(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// generateSubtasks handles POST /api/tasks/:id/generate-subtasks.
func (m *APIModule) generateSubtasks(c *fiber.Ctx) error {
	resp, err := m.tasks.GenerateSubtasks(c.Context(), &task.GenerateSubtasksRequest{
		UserID: currentUserID(c),
		TaskID: c.Params("id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// createSubTask handles POST /api/tasks/:id/subtasks.
func (m *APIModule) createSubTask(c *fiber.Ctx) error {
	var req task.CreateSubTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)
	req.TaskID = c.Params("id")

	resp, err := m.tasks.CreateSubTask(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// listSubTasks handles GET /api/tasks/:id/subtasks.
func (m *APIModule) listSubTasks(c *fiber.Ctx) error {
	resp, err := m.tasks.ListSubTasks(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// updateSubTask handles PUT /api/tasks/:id/subtasks/:subtaskId.
func (m *APIModule) updateSubTask(c *fiber.Ctx) error {
	var req task.UpdateSubTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)
	req.TaskID = c.Params("id")
	req.SubTaskID = c.Params("subtaskId")

	resp, err := m.tasks.UpdateSubTask(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// deleteSubTask handles DELETE /api/tasks/:id/subtasks/:subtaskId.
func (m *APIModule) deleteSubTask(c *fiber.Ctx) error {
	err := m.tasks.DeleteSubTask(c.Context(), &task.DeleteSubTaskRequest{
		UserID:    currentUserID(c),
		TaskID:    c.Params("id"),
		SubTaskID: c.Params("subtaskId"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// assignWorker handles POST /api/tasks/:id/subtasks/:subtaskId/workers.
func (m *APIModule) assignWorker(c *fiber.Ctx) error {
	var body AssignWorkerBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.WorkerID == "" {
		return badRequest(c, "Worker ID is required")
	}

	err := m.tasks.AssignWorker(c.Context(), &task.AssignWorkerRequest{
		UserID:    currentUserID(c),
		TaskID:    c.Params("id"),
		SubTaskID: c.Params("subtaskId"),
		WorkerID:  body.WorkerID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
