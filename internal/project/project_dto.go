package project

type CreateProjectRequest struct {
	Name      string   `json:"name" binding:"required"`
	LeaderID  string   `json:"leader_id" binding:"required,uuid"`
	MemberIDs []string `json:"member_ids" binding:"omitempty,dive,uuid"`
	Status    string   `json:"status"`
}

type UpdateProjectRequest struct {
	Name      *string   `json:"name"`
	LeaderID  *string   `json:"leader_id" binding:"omitempty,uuid"`
	MemberIDs *[]string `json:"member_ids" binding:"omitempty,dive,uuid"`
	Status    *string   `json:"status"`
}

type MemberInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProjectResponse struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Status  string       `json:"status"`
	Leader  *MemberInfo  `json:"leader,omitempty"`
	Members []MemberInfo `json:"members"`
}

type CreateTaskRequest struct {
	ProjectID   string `json:"project_id" binding:"required,uuid"`
	Description string `json:"description" binding:"required"`
}

type UpdateTaskRequest struct {
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Comments    *string `json:"comments"`
}

type TaskListQuery struct {
	Date      string `form:"date"`
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
	Status    string `form:"status"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Comments    string `json:"comments,omitempty"`
}
