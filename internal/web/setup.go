package web

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// SetupView walks an attendant from mode selection through counts and
// team assignment, then creates the session and match and jumps to the
// scoreboard.
func SetupView(game CatalogGame) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		payload, err := json.Marshal(map[string]any{
			"id":          game.ID,
			"name":        game.Name,
			"type":        game.Type,
			"max_players": game.MaxPlayers,
			"max_teams":   game.MaxTeams,
			"teams_only":  game.TeamsOnly,
		})
		if err != nil {
			return err
		}
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+esc(game.Name)+` - Setup</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <a class="ghost" href="/">&larr; Back</a>
        <h1>`+esc(game.Name)+`</h1>
        <p id="stepHint">How would you like to play?</p>
      </header>

      <section id="modeStep" class="panel">
        <button class="primary" data-mode="individual">Individual Play</button>
        <button class="primary" data-mode="team">Team Play</button>
      </section>

      <section id="countStep" class="panel" hidden>
        <div id="countButtons"></div>
      </section>

      <section id="teamStep" class="panel" hidden>
        <p>Assign players to teams (max 2 per team), or randomize.</p>
        <div id="teamBoard"></div>
        <button id="randomizeTeams" class="secondary">Randomize Teams</button>
        <button id="startGame" class="primary" disabled>Start Game</button>
      </section>

      <section id="soloStep" class="panel" hidden>
        <button id="startSolo" class="primary">Start Game</button>
      </section>

      <div id="setupResult" class="result"></div>
    </main>

    <script id="gameData" type="application/json">`+string(payload)+`</script>
    <script>
      const game = JSON.parse(document.getElementById("gameData").textContent);
      const teamColors = ["red", "blue", "green", "yellow"];
      const teamNames = ["Red Team", "Blue Team", "Green Team", "Yellow Team"];
      const state = { mode: null, playerCount: 0, teamCount: 0, assignments: {} };
      const result = document.getElementById("setupResult");

      function show(id) {
        for (const step of ["modeStep", "countStep", "teamStep", "soloStep"]) {
          document.getElementById(step).hidden = step !== id;
        }
      }

      function teamCountFor(playerCount) {
        if (playerCount <= 4) return 2;
        if (playerCount <= 6) return 3;
        return 4;
      }

      if (game.teams_only) {
        state.mode = "team";
        renderCounts();
      }

      document.querySelectorAll("#modeStep button").forEach((btn) => {
        btn.addEventListener("click", () => {
          state.mode = btn.dataset.mode;
          renderCounts();
        });
      });

      function renderCounts() {
        const host = document.getElementById("countButtons");
        host.innerHTML = "";
        const hint = document.getElementById("stepHint");
        const max = state.mode === "team" && game.teams_only ? game.max_teams : game.max_players;
        hint.textContent = state.mode === "team" && game.teams_only
          ? "How many teams?" : "How many players?";
        for (let n = 2; n <= max; n++) {
          const btn = document.createElement("button");
          btn.className = "primary";
          btn.textContent = n;
          btn.addEventListener("click", () => pickCount(n));
          host.appendChild(btn);
        }
        show("countStep");
      }

      function pickCount(n) {
        if (game.teams_only) {
          state.teamCount = n;
          state.playerCount = 0;
          createSession(buildTeams(n, []));
          return;
        }
        state.playerCount = n;
        if (state.mode === "individual") {
          show("soloStep");
          return;
        }
        state.teamCount = teamCountFor(n);
        renderTeamBoard();
      }

      function buildTeams(count, assignments) {
        const teams = [];
        for (let i = 0; i < count; i++) {
          teams.push({ id: i + 1, name: teamNames[i], color: teamColors[i], players: [] });
        }
        for (const [playerID, teamID] of assignments) {
          teams[teamID - 1].players.push(playerID);
        }
        return teams;
      }

      function renderTeamBoard() {
        const board = document.getElementById("teamBoard");
        board.innerHTML = "";
        for (let p = 1; p <= state.playerCount; p++) {
          const row = document.createElement("div");
          row.className = "assign-row";
          const label = document.createElement("span");
          label.textContent = "Player " + p;
          row.appendChild(label);
          for (let t = 1; t <= state.teamCount; t++) {
            const btn = document.createElement("button");
            btn.className = "secondary";
            btn.textContent = teamNames[t - 1];
            btn.addEventListener("click", () => assign(p, t));
            row.appendChild(btn);
          }
          board.appendChild(row);
        }
        show("teamStep");
      }

      function assign(playerID, teamID) {
        const onTeam = Object.values(state.assignments).filter((t) => t === teamID).length;
        if (onTeam >= 2) {
          return;
        }
        state.assignments[playerID] = teamID;
        updateStartButton();
      }

      function updateStartButton() {
        const assigned = Object.keys(state.assignments).length;
        document.getElementById("startGame").disabled = assigned !== state.playerCount;
      }

      document.getElementById("randomizeTeams").addEventListener("click", () => {
        const ids = Array.from({ length: state.playerCount }, (_, i) => i + 1);
        ids.sort(() => Math.random() - 0.5);
        state.assignments = {};
        let team = 1;
        let onTeam = 0;
        for (const id of ids) {
          if (onTeam >= 2) {
            team++;
            onTeam = 0;
          }
          if (team <= state.teamCount) {
            state.assignments[id] = team;
            onTeam++;
          }
        }
        updateStartButton();
      });

      document.getElementById("startGame").addEventListener("click", () => {
        const assignments = Object.entries(state.assignments).map(
          ([p, t]) => [parseInt(p, 10), t]
        );
        createSession(buildTeams(state.teamCount, assignments));
      });

      document.getElementById("startSolo").addEventListener("click", () => {
        createSession(null);
      });

      async function createSession(teams) {
        result.textContent = "Creating session...";
        const body = { game_id: game.id, mode: state.mode };
        if (state.mode === "individual") {
          body.player_count = state.playerCount;
        } else {
          body.team_count = state.teamCount;
          body.player_count = state.playerCount;
          if (teams) {
            body.teams = teams;
          }
        }
        const res = await fetch("/api/sessions", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(body)
        });
        const data = await res.json();
        if (!res.ok) {
          result.textContent = data.error || "Failed to create session.";
          return;
        }
        const matchRes = await fetch("/api/sessions/" + data.id + "/match", { method: "POST" });
        const match = await matchRes.json();
        if (!matchRes.ok) {
          result.textContent = match.error || "Failed to start match.";
          return;
        }
        window.location.href = "/matches/" + match.match_id + "/board";
      }
    </script>
  </body>
</html>
`)
		return nil
	})
}
