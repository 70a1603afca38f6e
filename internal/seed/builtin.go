package seed

import (
	"time"

	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/task"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
)

// Builtin returns the demo fixture set: three users, three clients with one
// workspace each, four projects and four tasks. The admin is signed in.
// Each call returns fresh values.
func Builtin() Data {
	return Data{
		Users: []user.User{
			{
				ID:     "user1",
				Name:   "Jane Smith",
				Email:  "jane.smith@techcorp.com",
				Role:   user.RoleAdmin,
				Avatar: "https://ui-avatars.com/api/?name=Jane+Smith&background=6366f1&color=fff",
			},
			{
				ID:     "user2",
				Name:   "John Davis",
				Email:  "john.davis@techcorp.com",
				Role:   user.RoleDeveloper,
				Avatar: "https://ui-avatars.com/api/?name=John+Davis&background=22c55e&color=fff",
			},
			{
				ID:     "user3",
				Name:   "Maria Rodriguez",
				Email:  "maria@acmecorp.com",
				Role:   user.RoleClient,
				Avatar: "https://ui-avatars.com/api/?name=Maria+Rodriguez&background=ef4444&color=fff",
			},
		},
		Clients: []client.Client{
			{
				ID:        "client1",
				Name:      "Acme Corporation",
				Email:     "contact@acmecorp.com",
				Phone:     "555-123-4567",
				CreatedAt: day(2023, time.January, 15),
				Status:    client.StatusActive,
				Logo:      "https://ui-avatars.com/api/?name=Acme+Corp&background=3b82f6&color=fff&size=128",
			},
			{
				ID:        "client2",
				Name:      "Globex Industries",
				Email:     "info@globex.com",
				Phone:     "555-987-6543",
				CreatedAt: day(2023, time.February, 22),
				Status:    client.StatusActive,
				Logo:      "https://ui-avatars.com/api/?name=Globex&background=8b5cf6&color=fff&size=128",
			},
			{
				ID:        "client3",
				Name:      "Stark Enterprises",
				Email:     "hello@stark.com",
				Phone:     "555-789-0123",
				CreatedAt: day(2023, time.March, 10),
				Status:    client.StatusInactive,
				Logo:      "https://ui-avatars.com/api/?name=Stark&background=f59e0b&color=fff&size=128",
			},
		},
		Projects: []project.Project{
			{
				ID:          "project1",
				ClientID:    "client1",
				Name:        "Website Redesign",
				Description: "Complete redesign of corporate website with new branding",
				Status:      project.StatusActive,
				CreatedAt:   day(2023, time.January, 20),
				StartDate:   dayPtr(2023, time.February, 1),
				EndDate:     dayPtr(2023, time.April, 30),
			},
			{
				ID:          "project2",
				ClientID:    "client1",
				Name:        "Mobile App Development",
				Description: "iOS and Android app for customer engagement",
				Status:      project.StatusPlanning,
				CreatedAt:   day(2023, time.February, 5),
				StartDate:   dayPtr(2023, time.March, 1),
			},
			{
				ID:          "project3",
				ClientID:    "client2",
				Name:        "CRM Integration",
				Description: "Integration with Salesforce and custom reporting",
				Status:      project.StatusActive,
				CreatedAt:   day(2023, time.February, 25),
				StartDate:   dayPtr(2023, time.March, 15),
				EndDate:     dayPtr(2023, time.May, 30),
			},
			{
				ID:          "project4",
				ClientID:    "client3",
				Name:        "E-commerce Platform",
				Description: "Full-stack e-commerce solution with payment processing",
				Status:      project.StatusOnHold,
				CreatedAt:   day(2023, time.March, 15),
				StartDate:   dayPtr(2023, time.April, 1),
			},
		},
		Workspaces: []Workspace{
			{ID: "workspace1", ClientID: "client1", MemberIDs: []string{"user1", "user2", "user3"}, CreatedAt: day(2023, time.January, 15)},
			{ID: "workspace2", ClientID: "client2", MemberIDs: []string{"user1", "user2"}, CreatedAt: day(2023, time.February, 22)},
			{ID: "workspace3", ClientID: "client3", MemberIDs: []string{"user1"}, CreatedAt: day(2023, time.March, 10)},
		},
		Tasks: []task.Task{
			{
				ID:          "task1",
				ProjectID:   "project1",
				Title:       "Design Homepage Mockup",
				Description: "Create mockups for the new homepage design",
				Status:      task.StatusCompleted,
				AssignedTo:  "user2",
				DueDate:     dayPtr(2023, time.February, 15),
				CreatedAt:   day(2023, time.February, 5),
			},
			{
				ID:          "task2",
				ProjectID:   "project1",
				Title:       "Develop Frontend Components",
				Description: "Implement React components based on approved designs",
				Status:      task.StatusInProgress,
				AssignedTo:  "user2",
				DueDate:     dayPtr(2023, time.March, 10),
				CreatedAt:   day(2023, time.February, 20),
			},
			{
				ID:          "task3",
				ProjectID:   "project1",
				Title:       "Backend API Integration",
				Description: "Connect frontend to new REST APIs",
				Status:      task.StatusTodo,
				AssignedTo:  "user2",
				DueDate:     dayPtr(2023, time.March, 30),
				CreatedAt:   day(2023, time.February, 25),
			},
			{
				ID:          "task4",
				ProjectID:   "project3",
				Title:       "Database Schema Design",
				Description: "Design database schema for CRM integration",
				Status:      task.StatusCompleted,
				AssignedTo:  "user2",
				DueDate:     dayPtr(2023, time.March, 25),
				CreatedAt:   day(2023, time.March, 15),
			},
		},
		CurrentUserID: "user1",
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}
