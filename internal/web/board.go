package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// BoardView is the scoreboard shell. All live data arrives over the
// match websocket; the buttons call the match action endpoints and rely
// on the next snapshot to rerender.
func BoardView(matchID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Scoreboard</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body class="board">
    <main class="shell">
      <header class="board-header">
        <h1 id="gameName">Scoreboard</h1>
        <div class="clocks">
          <div class="clock"><span id="roundClock">--</span><small>Round</small></div>
          <div class="clock"><span id="totalClock">--</span><small>Game</small></div>
        </div>
      </header>

      <div id="countdownOverlay" class="overlay" hidden>
        <span id="countdownValue">5</span>
      </div>

      <section class="panel">
        <p id="roundLabel"></p>
        <div id="grid" class="grid"></div>
        <div id="scores"></div>
        <div class="actions">
          <button id="startGameBtn" class="primary">Start Game</button>
          <button id="startRoundBtn" class="primary" hidden>Start Round</button>
          <button id="submitBtn" class="primary" hidden>Submit Scores</button>
          <button id="advanceBtn" class="primary" hidden>Next</button>
          <button id="exitBtn" class="ghost">Exit Game</button>
        </div>
      </section>

      <div id="expiryModal" class="overlay" hidden>
        <div class="panel">
          <h2>Time's up!</h2>
          <p>The game clock has run out. You can still enter this round's scores.</p>
          <button id="continueBtn" class="primary">Continue Adding Scores</button>
          <button id="expiryExitBtn" class="ghost">Exit Game</button>
        </div>
      </div>

      <section id="finalPanel" class="panel" hidden>
        <h2>Final Results</h2>
        <ol id="standings"></ol>
      </section>
    </main>

    <script>
      const matchID = "`+esc(matchID)+`";
      let state = null;

      const proto = window.location.protocol === "https:" ? "wss://" : "ws://";
      const socket = new WebSocket(proto + window.location.host + "/ws/matches/" + matchID);
      socket.addEventListener("message", (event) => {
        state = JSON.parse(event.data);
        render();
      });
      socket.addEventListener("close", () => {
        window.location.href = "/";
      });

      async function action(path, body) {
        const res = await fetch("/api/matches/" + matchID + path, {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: body ? JSON.stringify(body) : null
        });
        if (res.ok) {
          state = await res.json();
          render();
        }
      }

      document.getElementById("startGameBtn").addEventListener("click", () => action("/start"));
      document.getElementById("startRoundBtn").addEventListener("click", () => action("/rounds/start"));
      document.getElementById("submitBtn").addEventListener("click", () => action("/scores/submit"));
      document.getElementById("advanceBtn").addEventListener("click", () => action("/advance"));
      document.getElementById("continueBtn").addEventListener("click", () => action("/continue"));
      for (const id of ["exitBtn", "expiryExitBtn"]) {
        document.getElementById(id).addEventListener("click", async () => {
          await fetch("/api/matches/" + matchID + "/exit", { method: "POST" });
          window.location.href = "/";
        });
      }

      function fmtClock(seconds) {
        const m = Math.floor(seconds / 60);
        const s = seconds % 60;
        return m + ":" + String(s).padStart(2, "0");
      }

      function render() {
        if (!state) return;
        document.getElementById("gameName").textContent = state.game_name;
        document.getElementById("roundClock").textContent = fmtClock(state.clocks.round_remaining);
        document.getElementById("totalClock").textContent = fmtClock(state.clocks.total_remaining);
        document.getElementById("roundLabel").textContent =
          "Round " + state.current_round + " of " + state.total_rounds;

        document.getElementById("countdownOverlay").hidden = state.phase !== "countdown";
        document.getElementById("countdownValue").textContent = state.clocks.countdown_remaining;
        document.getElementById("expiryModal").hidden = !state.expiry_notice;

        document.getElementById("startGameBtn").hidden = state.phase !== "setup";
        const playing = state.phase === "playing";
        document.getElementById("startRoundBtn").hidden =
          !playing || state.clocks.round_running || state.round_complete ||
          (state.round_started && !state.submitted) ||
          (state.submitted && state.current_round >= state.total_rounds) || state.time_expired;
        document.getElementById("submitBtn").hidden = !playing || !state.round_complete;
        document.getElementById("advanceBtn").hidden = !playing || !state.submitted;
        document.getElementById("finalPanel").hidden = state.phase !== "finished";

        renderGrid();
        renderScores();
        if (state.phase === "finished") {
          renderStandings();
        }
      }

      function renderGrid() {
        const host = document.getElementById("grid");
        host.innerHTML = "";
        if (!state.grid) return;
        for (const row of state.grid) {
          for (const cell of row) {
            const div = document.createElement("div");
            div.className = "cell" + (cell.label === "X" ? " avoid" : "");
            if (cell.color) {
              div.classList.add("team-" + cell.color);
            }
            div.textContent = cell.label || "";
            host.appendChild(div);
          }
        }
      }

      function renderScores() {
        const host = document.getElementById("scores");
        host.innerHTML = "";
        const group = state.current_group || [];
        for (const entry of state.entries) {
          const row = document.createElement("div");
          row.className = "score-row";
          const name = document.createElement("span");
          name.textContent = entry.display_name;
          row.appendChild(name);
          const total = document.createElement("strong");
          total.textContent = entry.total;
          row.appendChild(total);
          if (state.phase === "playing" && group.includes(entry.participant_id)) {
            row.appendChild(scoreControls(entry.participant_id));
          }
          host.appendChild(row);
        }
      }

      function scoreControls(participantID) {
        const wrap = document.createElement("span");
        wrap.className = "controls";
        const minus = document.createElement("button");
        minus.textContent = "-" + state.score_step;
        minus.addEventListener("click", () =>
          action("/scores/adjust", { participant_id: participantID, delta: -state.score_step }));
        const pending = document.createElement("span");
        pending.textContent = (state.pending && state.pending[participantID]) || 0;
        const plus = document.createElement("button");
        plus.textContent = "+" + state.score_step;
        plus.addEventListener("click", () =>
          action("/scores/adjust", { participant_id: participantID, delta: state.score_step }));
        wrap.appendChild(minus);
        wrap.appendChild(pending);
        wrap.appendChild(plus);
        return wrap;
      }

      function renderStandings() {
        const host = document.getElementById("standings");
        host.innerHTML = "";
        for (const standing of state.standings || []) {
          const item = document.createElement("li");
          item.textContent = standing.display_name + " - " + standing.total + " (" + standing.label + ")";
          host.appendChild(item);
        }
      }
    </script>
  </body>
</html>
`)
		return nil
	})
}
